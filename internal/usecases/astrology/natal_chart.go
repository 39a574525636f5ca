package astrology

import (
	"time"

	"github.com/sensa-ai-tech/OATH/internal/domain"
)

// ComputeNatalChart дома, позиции и аспекты на момент рождения (UTC)
func (s *Service) ComputeNatalChart(birth time.Time, lat, lon float64) (*domain.AstrologyData, error) {
	birth = birth.UTC()
	houses := computeHouses(s.Eph.SiderealTime(birth), lat, lon)

	positions, err := s.resolvePositions(birth, houses)
	if err != nil {
		return nil, err
	}

	// аспекты только между физическими телами
	aspects := detectAspects(positions, natalOrbs)

	var sun, moon domain.PlanetPosition
	for _, p := range positions {
		switch p.Planet {
		case domain.PlanetSun:
			sun = p
		case domain.PlanetMoon:
			moon = p
		}
	}

	asc := anglePosition(domain.PointAscendant, houses.Ascendant, 1)
	mc := anglePosition(domain.PointMidheaven, houses.Midheaven, 10)
	positions = append(positions, asc, mc)

	s.Log.Debug("natal chart computed",
		"sun", sun.Sign,
		"moon", moon.Sign,
		"ascendant", asc.Sign,
		"planets", len(positions),
		"aspects", len(aspects),
	)

	return &domain.AstrologyData{
		Sun:        sun,
		Moon:       moon,
		Ascendant:  asc,
		Planets:    positions,
		Aspects:    aspects,
		HouseCusps: houses.Cusps,
	}, nil
}
