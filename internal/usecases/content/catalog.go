package content

import (
	"embed"
	"fmt"
	"path"
	"regexp"
	"sort"

	"github.com/sensa-ai-tech/OATH/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.yaml
var catalogFS embed.FS

var placeholderRe = regexp.MustCompile(`\{\{(\w+)\}\}`)

type catalogFile struct {
	Templates []domain.FortuneTemplate `yaml:"templates"`
}

// Catalog неизменяемый проверенный набор шаблонов
type Catalog struct {
	templates []domain.FortuneTemplate
	fallbacks []domain.FortuneTemplate
	byID      map[string]domain.FortuneTemplate
}

// ParseTemplates читает YAML-документ каталога
func ParseTemplates(data []byte) ([]domain.FortuneTemplate, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return f.Templates, nil
}

// EmbeddedTemplates шаблоны, вшитые в бинарник, в порядке файлов
func EmbeddedTemplates() ([]domain.FortuneTemplate, error) {
	entries, err := catalogFS.ReadDir("catalog")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var all []domain.FortuneTemplate
	for _, e := range entries {
		data, err := catalogFS.ReadFile(path.Join("catalog", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		templates, err := ParseTemplates(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		all = append(all, templates...)
	}
	return all, nil
}

// NewCatalog проверяет шаблоны: уникальные id, известные теги и переменные, хотя бы один fallback
func NewCatalog(templates []domain.FortuneTemplate) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]domain.FortuneTemplate, len(templates))}

	for _, t := range templates {
		if err := validateTemplate(t); err != nil {
			return nil, err
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, catalogError("duplicate template id %q", t.ID)
		}
		c.byID[t.ID] = t
		c.templates = append(c.templates, t)
		if t.HasTag(domain.TagFallback) {
			c.fallbacks = append(c.fallbacks, t)
		}
	}

	if len(c.fallbacks) == 0 {
		return nil, catalogError("catalog has no %q template", domain.TagFallback)
	}
	return c, nil
}

func validateTemplate(t domain.FortuneTemplate) error {
	if t.ID == "" {
		return catalogError("template without id")
	}
	if t.Message == "" || t.ActionSuggestion == "" {
		return catalogError("template %s: empty message or action suggestion", t.ID)
	}
	if len(t.Tags) == 0 {
		return catalogError("template %s: no tags", t.ID)
	}
	for _, tag := range t.Tags {
		if !tag.IsValid() {
			return catalogError("template %s: unknown tag %q", t.ID, tag)
		}
	}
	for _, text := range []string{t.Message, t.ActionSuggestion} {
		for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
			if !domain.TemplateVariable(m[1]).IsValid() {
				return catalogError("template %s: unknown variable %q", t.ID, m[1])
			}
		}
	}
	return nil
}

func catalogError(format string, args ...interface{}) error {
	return &domain.ContentError{Code: domain.CodeTemplateNotFound, Msg: fmt.Sprintf(format, args...)}
}

func (c *Catalog) Len() int {
	return len(c.templates)
}

func (c *Catalog) Get(id string) (domain.FortuneTemplate, bool) {
	t, ok := c.byID[id]
	return t, ok
}
