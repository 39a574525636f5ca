package content

import (
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/pkg/metrics"
)

const (
	StaticTemplateID = "static-positive"
	staticMessage    = "今天是屬於你的一天。無論外在如何變化，你都擁有調整步伐的能力。"
	staticAction     = "花三分鐘深呼吸，寫下一件今天值得感謝的小事。"
)

// MergeTags объединяет теги транзитов и бацзы без повторов, порядок первого появления
func MergeTags(groups ...[]domain.Tag) []domain.Tag {
	seen := make(map[domain.Tag]struct{})
	var out []domain.Tag
	for _, g := range groups {
		for _, t := range g {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// GenerateDailyFortune выбирает лучший шаблон, подставляет переменные и проверяет результат фильтром.
// Уровни: L2 совпадение по тегам, L3 fallback-шаблон, L4 статический текст при срабатывании фильтра.
func (s *Service) GenerateDailyFortune(transitTags, baziTags []domain.Tag, vars Variables) domain.GeneratedFortune {
	tags := MergeTags(transitTags, baziTags)

	level := domain.LevelTemplate
	var tpl domain.FortuneTemplate
	if ranked := s.catalog.rank(tags); len(ranked) > 0 {
		tpl = ranked[0].template
	} else {
		tpl = s.catalog.fallbacks[0]
		level = domain.LevelFallback
	}

	values := vars.values()
	fortune := domain.GeneratedFortune{
		TemplateID:       tpl.ID,
		Message:          render(tpl.Message, values),
		ActionSuggestion: render(tpl.ActionSuggestion, values),
		MatchedTags:      tags,
		Level:            level,
	}

	check := s.safety.Check(fortune.Message + "\n" + fortune.ActionSuggestion)
	if check.Triggered {
		metrics.SafetyTriggered.WithLabelValues("template").Inc()
		s.log.Warn("safety filter triggered on rendered template",
			"template_id", tpl.ID,
			"keyword", check.MatchedKeyword,
		)
		fortune = StaticFortune(tags, check.Resources)
		fortune.SafetyKeyword = check.MatchedKeyword
		fortune.RejectedTemplateID = tpl.ID
		return fortune
	}

	s.log.Debug("fortune generated",
		"template_id", tpl.ID,
		"level", level,
		"tags", len(tags),
	)
	return fortune
}

// StaticFortune нейтральное сообщение последнего уровня генерации
func StaticFortune(tags []domain.Tag, resources []domain.HelpResource) domain.GeneratedFortune {
	return domain.GeneratedFortune{
		TemplateID:       StaticTemplateID,
		Message:          staticMessage,
		ActionSuggestion: staticAction,
		SafetyTriggered:  len(resources) > 0,
		Resources:        resources,
		MatchedTags:      tags,
		Level:            domain.LevelStatic,
	}
}

// VariablesFor значения переменных из результатов дня
func VariablesFor(natal *domain.AstrologyData, transit *domain.DailyTransit, day *domain.DailyBaziAnalysis, natalBazi *domain.BaziData, userName string) Variables {
	v := Variables{UserName: userName}
	if natal != nil {
		v.SunSign = natal.Sun.Sign
	}
	if transit != nil {
		v.MoonSign = transit.MoonSign
	}
	if day != nil {
		v.DayElement = day.DayElement
	}
	if natalBazi != nil {
		v.DayMaster = natalBazi.DayMasterAnalysis.DayMaster
	}
	return v
}
