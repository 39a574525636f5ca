package content

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/storage"
)

// LoadTemplates читает все *.yaml под prefix; файлы обрабатываются в порядке имён
func LoadTemplates(ctx context.Context, store storage.IS3Client, prefix string) ([]domain.FortuneTemplate, error) {
	files, err := store.ListFiles(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog files: %w", err)
	}
	sort.Strings(files)

	var all []domain.FortuneTemplate
	for _, file := range files {
		ext := strings.ToLower(path.Ext(file))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		data, err := store.GetFile(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", file, err)
		}
		templates, err := ParseTemplates(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		all = append(all, templates...)
	}
	if len(all) == 0 {
		return nil, &domain.ContentError{Code: domain.CodeTemplateNotFound, Msg: "no templates under " + prefix}
	}
	return all, nil
}

// NewFromStore вшитый каталог плюс шаблоны из бакета, проверенные вместе;
// при ошибке загрузки или проверки остаётся только вшитый каталог
func NewFromStore(ctx context.Context, store storage.IS3Client, prefix string, log *slog.Logger) (*Service, error) {
	embedded, err := EmbeddedTemplates()
	if err != nil {
		return nil, err
	}

	remote, err := LoadTemplates(ctx, store, prefix)
	if err == nil {
		var catalog *Catalog
		catalog, err = NewCatalog(append(embedded, remote...))
		if err == nil {
			log.Info("template catalog extended from storage",
				"prefix", prefix,
				"remote_templates", len(remote),
				"templates", catalog.Len(),
			)
			return New(catalog, NewSafetyFilter(DefaultSafetyConfig()), log), nil
		}
	}

	log.Warn("failed to load remote templates, using embedded catalog", "error", err, "prefix", prefix)
	return NewDefault(log)
}
