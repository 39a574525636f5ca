package content

import (
	"log/slog"

	"github.com/sensa-ai-tech/OATH/internal/domain"
)

// Service контент-движок: каталог шаблонов, подстановка переменных, фильтр безопасности
type Service struct {
	catalog *Catalog
	safety  *SafetyFilter
	log     *slog.Logger
}

func New(catalog *Catalog, safety *SafetyFilter, log *slog.Logger) *Service {
	return &Service{
		catalog: catalog,
		safety:  safety,
		log:     log,
	}
}

// NewDefault каталог из бинарника и стандартный фильтр
func NewDefault(log *slog.Logger) (*Service, error) {
	templates, err := EmbeddedTemplates()
	if err != nil {
		return nil, err
	}
	catalog, err := NewCatalog(templates)
	if err != nil {
		return nil, err
	}
	return New(catalog, NewSafetyFilter(DefaultSafetyConfig()), log), nil
}

func (s *Service) Catalog() *Catalog {
	return s.catalog
}

func (s *Service) CheckSafety(text string) domain.SafetyResult {
	return s.safety.Check(text)
}
