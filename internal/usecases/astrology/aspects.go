package astrology

import "github.com/sensa-ai-tech/OATH/internal/domain"

// orbTable допустимые орбисы по типам аспектов
type orbTable map[domain.AspectType]float64

var (
	natalOrbs = orbTable{
		domain.AspectConjunction: 8,
		domain.AspectSextile:     6,
		domain.AspectSquare:      7,
		domain.AspectTrine:       8,
		domain.AspectOpposition:  8,
	}
	transitOrbs = orbTable{
		domain.AspectConjunction: 6,
		domain.AspectSextile:     4,
		domain.AspectSquare:      5,
		domain.AspectTrine:       6,
		domain.AspectOpposition:  6,
	}
)

// matchAspect первый по каноническому порядку аспект, попавший в орбис
func matchAspect(lon1, lon2 float64, orbs orbTable) (domain.AspectType, float64, float64, bool) {
	angle := separation(lon1, lon2)
	for _, t := range domain.AllAspectTypes() {
		orb := angle - t.Angle()
		if orb < 0 {
			orb = -orb
		}
		if orb <= orbs[t] {
			return t, angle, orb, true
		}
	}
	return "", angle, 0, false
}

// isApplying эвристика: орбис меньше половины допустимого
func isApplying(t domain.AspectType, orb float64, orbs orbTable) bool {
	return orb < orbs[t]/2
}

// detectAspects не более одного аспекта на неупорядоченную пару
func detectAspects(positions []domain.PlanetPosition, orbs orbTable) []domain.AspectData {
	aspects := make([]domain.AspectData, 0)
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			t, angle, orb, ok := matchAspect(positions[i].Degree, positions[j].Degree, orbs)
			if !ok {
				continue
			}
			aspects = append(aspects, domain.AspectData{
				Planet1:    positions[i].Planet,
				Planet2:    positions[j].Planet,
				AspectType: t,
				Angle:      angle,
				Orb:        orb,
				IsApplying: isApplying(t, orb, orbs),
			})
		}
	}
	return aspects
}
