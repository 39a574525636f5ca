package bazi

import (
	"time"

	"github.com/sensa-ai-tech/OATH/internal/domain"
)

// luckPillars десятилетия удачи; записи с пустыми символами (до начала отсчёта) пропускаются
func (s *Service) luckPillars(t time.Time, gender domain.Gender, count int) ([]domain.LuckPillar, error) {
	entries, err := s.Cal.LuckPillars(t, gender == domain.GenderMale, count)
	if err != nil {
		return nil, domain.NewComputationError("calendar", domain.CodeComputationFailed, err)
	}

	pillars := make([]domain.LuckPillar, 0, len(entries))
	for _, e := range entries {
		if e.Stem == "" || e.Branch == "" {
			continue
		}
		stem, err := lookupStem(e.Stem)
		if err != nil {
			return nil, calendarError("luck", err)
		}
		branch, err := lookupBranch(e.Branch)
		if err != nil {
			return nil, calendarError("luck", err)
		}
		pillars = append(pillars, domain.LuckPillar{
			Stem:     stem,
			Branch:   branch,
			StartAge: e.StartAge,
			EndAge:   e.EndAge,
		})
	}
	return pillars, nil
}
