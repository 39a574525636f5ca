package bazi

import (
	"errors"
	"fmt"
	"time"

	"github.com/sensa-ai-tech/OATH/internal/domain"
)

// ComputeDailyBazi столп дня против господина дня; без коррекции солнечного времени
func (s *Service) ComputeDailyBazi(date time.Time, natal *domain.BaziData) (*domain.DailyBaziAnalysis, error) {
	if natal == nil {
		return nil, domain.NewComputationError("calendar", domain.CodeComputationFailed, errors.New("natal bazi is missing"))
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)
	raw, err := s.Cal.DayPillar(day)
	if err != nil {
		return nil, domain.NewComputationError("calendar", domain.CodeComputationFailed, err)
	}

	stem, err := lookupStem(raw.Stem)
	if err != nil {
		return nil, calendarError("daily", err)
	}
	branch, err := lookupBranch(raw.Branch)
	if err != nil {
		return nil, calendarError("daily", err)
	}

	element := stem.Element()
	god := relation(natal.DayMasterAnalysis.DayMaster, stem)

	return &domain.DailyBaziAnalysis{
		Date:              day.Format("2006-01-02"),
		DayStem:           stem,
		DayBranch:         branch,
		DayElement:        element,
		DayRelation:       god,
		InterpretationKey: fmt.Sprintf("daily-%s-%s", element, god),
	}, nil
}
