package astrology

import (
	"fmt"
	"math"
	"time"

	"github.com/sensa-ai-tech/OATH/internal/domain"
)

const retrogradeWindow = 24 * time.Hour

// resolvePositions позиции десяти тел; отказ Солнца или Луны фатален, остальные тела пропускаются
func (s *Service) resolvePositions(t time.Time, houses domain.HouseData) ([]domain.PlanetPosition, error) {
	positions := make([]domain.PlanetPosition, 0, len(domain.AllPlanets()))

	for _, p := range domain.AllPlanets() {
		pos, err := s.resolvePosition(p, t, houses)
		if err != nil {
			if p == domain.PlanetSun || p == domain.PlanetMoon {
				return nil, domain.NewComputationError("ephemeris", domain.CodeEphemerisError, err)
			}
			s.Log.Warn("planet skipped", "planet", p, "error", err)
			continue
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

func (s *Service) resolvePosition(p domain.Planet, t time.Time, houses domain.HouseData) (domain.PlanetPosition, error) {
	lon, err := s.Eph.Longitude(p, t)
	if err != nil {
		return domain.PlanetPosition{}, fmt.Errorf("failed to get longitude of %s: %w", p, err)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return domain.PlanetPosition{}, fmt.Errorf("non-finite longitude of %s", p)
	}
	lon = normalize(lon)

	retro := false
	if p != domain.PlanetSun && p != domain.PlanetMoon {
		retro, err = s.isRetrograde(p, t)
		if err != nil {
			return domain.PlanetPosition{}, err
		}
	}

	return domain.PlanetPosition{
		Planet:       p,
		Sign:         domain.SignOf(lon),
		Degree:       lon,
		SignDegree:   math.Mod(lon, 30),
		House:        houseOf(lon, houses.Cusps),
		IsRetrograde: retro,
	}, nil
}

// isRetrograde конечная разность долгот за сутки до и после t
func (s *Service) isRetrograde(p domain.Planet, t time.Time) (bool, error) {
	before, err := s.Eph.Longitude(p, t.Add(-retrogradeWindow))
	if err != nil {
		return false, fmt.Errorf("failed to sample %s before: %w", p, err)
	}
	after, err := s.Eph.Longitude(p, t.Add(retrogradeWindow))
	if err != nil {
		return false, fmt.Errorf("failed to sample %s after: %w", p, err)
	}
	return signedDelta(before, after) < 0, nil
}

// anglePosition псевдо-позиция ASC или MC
func anglePosition(p domain.Planet, lon float64, house int) domain.PlanetPosition {
	return domain.PlanetPosition{
		Planet:     p,
		Sign:       domain.SignOf(lon),
		Degree:     lon,
		SignDegree: math.Mod(lon, 30),
		House:      house,
	}
}
