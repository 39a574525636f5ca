package astrology

import "github.com/sensa-ai-tech/OATH/internal/domain"

const (
	tagTopTransits   = 3
	tagTopKeyAspects = 3
)

// TransitTags теги для подбора шаблона по транзитам дня
func TransitTags(t *domain.DailyTransit) []domain.Tag {
	if t == nil {
		return nil
	}

	tags := make([]domain.Tag, 0, 12)
	seen := make(map[domain.Tag]struct{})
	add := func(tag domain.Tag) {
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	add(domain.MoonSignTag(t.MoonSign))

	for i, tr := range t.Transits {
		if i >= tagTopTransits {
			break
		}
		add(domain.AspectTag(tr.AspectType))
		add(domain.PlanetTag(tr.TransitPlanet))
	}

	for i, a := range t.KeyAspects {
		if i >= tagTopKeyAspects {
			break
		}
		add(domain.AspectTag(a.AspectType))
	}

	for _, p := range t.PlanetPositions {
		if p.IsRetrograde {
			add(domain.RetrogradeTag(p.Planet))
		}
	}

	return tags
}
