package content

import (
	"sort"

	"github.com/sensa-ai-tech/OATH/internal/domain"
)

const defaultMatchLimit = 1

type scored struct {
	template domain.FortuneTemplate
	score    int
}

// rank шаблоны с ненулевым пересечением тегов по убыванию; порядок каталога сохраняется при равенстве
func (c *Catalog) rank(tags []domain.Tag) []scored {
	set := make(map[domain.Tag]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}

	var ranked []scored
	for _, tpl := range c.templates {
		score := 0
		for _, t := range tpl.Tags {
			if _, ok := set[t]; ok {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{template: tpl, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked
}

// MatchTemplates лучшие по пересечению тегов; без совпадений - fallback-шаблоны
func (s *Service) MatchTemplates(tags []domain.Tag, limit int) []domain.FortuneTemplate {
	if limit <= 0 {
		limit = defaultMatchLimit
	}

	ranked := s.catalog.rank(tags)
	if len(ranked) == 0 {
		return limitTemplates(s.catalog.fallbacks, limit)
	}

	out := make([]domain.FortuneTemplate, 0, limit)
	for i := 0; i < len(ranked) && i < limit; i++ {
		out = append(out, ranked[i].template)
	}
	return out
}

func limitTemplates(templates []domain.FortuneTemplate, limit int) []domain.FortuneTemplate {
	if len(templates) > limit {
		templates = templates[:limit]
	}
	return append([]domain.FortuneTemplate(nil), templates...)
}
