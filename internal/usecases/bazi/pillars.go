package bazi

import (
	"fmt"
	"time"

	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/calendar"
)

// ComputeBazi четыре столпа по моменту рождения (UTC) и долготе
func (s *Service) ComputeBazi(birth time.Time, lon float64, gender domain.Gender, precision domain.TimePrecision) (*domain.BaziData, error) {
	instant := birth.UTC()
	usedTrueSolarTime := false
	if precision == domain.PrecisionExact {
		instant = TrueSolarTime(instant, lon)
		usedTrueSolarTime = true
	}

	raw, err := s.Cal.FourPillars(instant)
	if err != nil {
		return nil, domain.NewComputationError("calendar", domain.CodeComputationFailed, err)
	}

	year, err := buildPillar(raw.Year)
	if err != nil {
		return nil, calendarError("year", err)
	}
	month, err := buildPillar(raw.Month)
	if err != nil {
		return nil, calendarError("month", err)
	}
	day, err := buildPillar(raw.Day)
	if err != nil {
		return nil, calendarError("day", err)
	}

	var hour *domain.Pillar
	if precision != domain.PrecisionUnknown {
		h, err := buildPillar(raw.Hour)
		if err != nil {
			return nil, calendarError("hour", err)
		}
		hour = &h
	}

	luck, err := s.luckPillars(instant, gender, defaultLuckPillars)
	if err != nil {
		return nil, err
	}

	s.Log.Debug("bazi computed",
		"day_master", day.Stem,
		"precision", precision,
		"true_solar_time", usedTrueSolarTime,
	)

	return &domain.BaziData{
		YearPillar:        year,
		MonthPillar:       month,
		DayPillar:         day,
		HourPillar:        hour,
		LuckPillars:       luck,
		DayMasterAnalysis: analyzeDayMaster(day.Stem, day.Branch),
		UsedTrueSolarTime: usedTrueSolarTime,
		TimePrecision:     precision,
	}, nil
}

// buildPillar переводит сырые символы календаря в столп; неизвестный символ - ошибка
func buildPillar(raw calendar.Pillar) (domain.Pillar, error) {
	stem, err := lookupStem(raw.Stem)
	if err != nil {
		return domain.Pillar{}, err
	}
	branch, err := lookupBranch(raw.Branch)
	if err != nil {
		return domain.Pillar{}, err
	}

	p := domain.Pillar{
		Stem:          stem,
		Branch:        branch,
		StemElement:   stem.Element(),
		BranchElement: branchElement[branch],
		HiddenStems:   append([]domain.Stem(nil), hiddenStems[branch]...),
	}
	if raw.TenGod != "" {
		god, err := lookupTenGod(raw.TenGod)
		if err != nil {
			return domain.Pillar{}, err
		}
		p.TenGod = &god
	}
	return p, nil
}

func calendarError(pillar string, err error) error {
	return domain.NewComputationError("calendar", domain.CodeComputationFailed, fmt.Errorf("%s pillar: %w", pillar, err))
}
