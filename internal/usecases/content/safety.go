package content

import (
	"strings"

	"github.com/sensa-ai-tech/OATH/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// SafetyConfig ключевые слова кризисных состояний и контакты служб помощи
type SafetyConfig struct {
	Keywords  []string
	Resources []domain.HelpResource
}

func DefaultSafetyConfig() SafetyConfig {
	return SafetyConfig{
		Keywords: []string{
			"想死", "不想活", "活不下去", "自殺", "結束生命",
			"尋死", "了結", "跳樓", "割腕", "安眠藥",
		},
		Resources: []domain.HelpResource{
			{Name: "衛生福利部安心專線", Phone: "1925"},
			{Name: "生命線", Phone: "1995"},
			{Name: "張老師", Phone: "1980"},
		},
	}
}

// SafetyFilter поиск подстрок в нормализованном тексте
type SafetyFilter struct {
	keywords  []string
	resources []domain.HelpResource
	lower     cases.Caser
}

func NewSafetyFilter(cfg SafetyConfig) *SafetyFilter {
	f := &SafetyFilter{
		resources: append([]domain.HelpResource(nil), cfg.Resources...),
		lower:     cases.Lower(language.Und),
	}
	for _, k := range cfg.Keywords {
		if k = f.normalize(k); k != "" {
			f.keywords = append(f.keywords, k)
		}
	}
	return f
}

// normalize NFKC сводит полноширинные формы, затем нижний регистр
func (f *SafetyFilter) normalize(s string) string {
	return strings.TrimSpace(f.lower.String(norm.NFKC.String(s)))
}

func (f *SafetyFilter) Check(text string) domain.SafetyResult {
	normalized := f.normalize(text)
	for _, k := range f.keywords {
		if strings.Contains(normalized, k) {
			return domain.SafetyResult{
				Triggered:      true,
				MatchedKeyword: k,
				Resources:      append([]domain.HelpResource(nil), f.resources...),
			}
		}
	}
	return domain.SafetyResult{}
}
