package dailyFortuneRepo

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/storage/pg"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	ports "github.com/sensa-ai-tech/OATH/internal/ports/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (ports.IDailyFortuneRepo, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(pg.NewDB(sqlx.NewDb(raw, "sqlmock")), log), mock
}

func sampleFortune() *domain.DailyFortune {
	return &domain.DailyFortune{
		ID:          uuid.New(),
		ProfileID:   uuid.New(),
		FortuneDate: "2026-03-02",
		Fortune: domain.GeneratedFortune{
			TemplateID:       "wood-growth-01",
			Message:          "今天適合開始新計畫",
			ActionSuggestion: "寫下第一行字",
			Level:            domain.LevelTemplate,
		},
		EngineVersion: domain.EngineVersion,
		CreatedAt:     time.Date(2026, 3, 2, 5, 0, 0, 0, time.UTC),
	}
}

func TestSave(t *testing.T) {
	repo, mock := newRepo(t)
	f := sampleFortune()

	mock.ExpectExec("INSERT INTO daily_fortunes .* ON CONFLICT \\(profile_id, fortune_date\\) DO UPDATE SET").
		WithArgs(f.ID, f.ProfileID, "2026-03-02", "L2", "wood-growth-01", sqlmock.AnyArg(), domain.EngineVersion, f.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), f))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByDate(t *testing.T) {
	repo, mock := newRepo(t)
	f := sampleFortune()
	payload, err := json.Marshal(f)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT payload FROM daily_fortunes WHERE profile_id = \\$1 AND fortune_date = \\$2").
		WithArgs(f.ProfileID, "2026-03-02").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	got, err := repo.GetByDate(context.Background(), f.ProfileID, "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)
	assert.Equal(t, f.Fortune.Message, got.Fortune.Message)
	assert.Equal(t, domain.LevelTemplate, got.Fortune.Level)
}

func TestGetLatest_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("ORDER BY fortune_date DESC, created_at DESC LIMIT 1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	_, err := repo.GetLatest(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
