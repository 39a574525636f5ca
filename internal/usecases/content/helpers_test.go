package content

import (
	"io"
	"log/slog"
	"testing"

	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tpl(id string, tags ...domain.Tag) domain.FortuneTemplate {
	return domain.FortuneTemplate{
		ID:               id,
		Tags:             tags,
		Theme:            "test",
		Message:          "message " + id,
		ActionSuggestion: "action " + id,
	}
}

func newTestService(t *testing.T, templates ...domain.FortuneTemplate) *Service {
	t.Helper()
	catalog, err := NewCatalog(templates)
	require.NoError(t, err)
	return New(catalog, NewSafetyFilter(DefaultSafetyConfig()), discardLogger())
}
