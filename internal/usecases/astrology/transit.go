package astrology

import (
	"fmt"
	"sort"
	"time"

	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sj14/astral/pkg/astral"
)

const (
	maxTransits   = 10
	maxKeyAspects = 5
	dateLayout    = "2006-01-02"
)

// planetWeight значимость транзитной планеты: медленные планеты весомее
var planetWeight = map[domain.Planet]float64{
	domain.PlanetSun:     3,
	domain.PlanetMoon:    2,
	domain.PlanetMercury: 2,
	domain.PlanetVenus:   2,
	domain.PlanetMars:    3,
	domain.PlanetJupiter: 4,
	domain.PlanetSaturn:  5,
	domain.PlanetUranus:  5,
	domain.PlanetNeptune: 4,
	domain.PlanetPluto:   5,
}

func weightOf(p domain.Planet) float64 {
	if w, ok := planetWeight[p]; ok {
		return w
	}
	return 1
}

// transitInstant местный истинный полдень даты в точке наблюдателя
func transitInstant(date time.Time, lat, lon float64) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return astral.Noon(astral.Observer{Latitude: lat, Longitude: lon}, day).UTC()
}

// ComputeDailyTransit небо на дату против натальных позиций
func (s *Service) ComputeDailyTransit(date time.Time, natal []domain.PlanetPosition, lat, lon float64) (*domain.DailyTransit, error) {
	instant := transitInstant(date, lat, lon)
	houses := computeHouses(s.Eph.SiderealTime(instant), lat, lon)

	sky, err := s.resolvePositions(instant, houses)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve transit positions: %w", err)
	}

	transits := make([]domain.TransitEvent, 0)
	for _, tp := range sky {
		for _, np := range natal {
			if np.Planet.IsAngle() {
				continue
			}
			t, _, orb, ok := matchAspect(tp.Degree, np.Degree, transitOrbs)
			if !ok {
				continue
			}
			transits = append(transits, domain.TransitEvent{
				TransitPlanet:     tp.Planet,
				NatalPlanet:       np.Planet,
				AspectType:        t,
				Orb:               orb,
				IsApplying:        isApplying(t, orb, transitOrbs),
				InterpretationKey: fmt.Sprintf("transit-%s-%s-natal-%s", tp.Planet, t, np.Planet),
			})
		}
	}

	sort.SliceStable(transits, func(i, j int) bool {
		return significance(transits[i]) > significance(transits[j])
	})
	if len(transits) > maxTransits {
		transits = transits[:maxTransits]
	}

	keyAspects := detectAspects(sky, transitOrbs)
	sort.SliceStable(keyAspects, func(i, j int) bool {
		return keyAspects[i].Orb < keyAspects[j].Orb
	})
	if len(keyAspects) > maxKeyAspects {
		keyAspects = keyAspects[:maxKeyAspects]
	}

	moonSign := domain.SignAries
	for _, p := range sky {
		if p.Planet == domain.PlanetMoon {
			moonSign = p.Sign
			break
		}
	}

	return &domain.DailyTransit{
		Date:            date.Format(dateLayout),
		Transits:        transits,
		MoonSign:        moonSign,
		PlanetPositions: sky,
		KeyAspects:      keyAspects,
	}, nil
}

// significance вес планеты, делённый на орбис: точные аспекты медленных планет вперёд
func significance(e domain.TransitEvent) float64 {
	return weightOf(e.TransitPlanet) / (e.Orb + 0.1)
}
