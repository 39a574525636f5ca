package profileRepo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/storage/pg"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/persistence"
	ports "github.com/sensa-ai-tech/OATH/internal/ports/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (ports.IProfileRepo, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(pg.NewDB(sqlx.NewDb(raw, "sqlmock")), log), mock
}

var profileCols = []string{
	"id", "name", "locale", "birth_datetime", "latitude", "longitude",
	"gender", "time_precision", "created_at", "updated_at",
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()
	birth := time.Date(1990, 5, 15, 0, 30, 0, 0, time.UTC)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, name, locale, birth_datetime, .* FROM profiles WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(profileCols).
			AddRow(id.String(), "小美", "zh-TW", birth, 25.033, 121.565, "female", "exact", created, created))

	p, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, p.ID)
	assert.Equal(t, "小美", p.Name)
	assert.Equal(t, domain.LocaleZhTW, p.Locale)
	assert.Equal(t, birth, p.Birth.DateTime)
	assert.Equal(t, domain.GenderFemale, p.Birth.Gender)
	assert.Equal(t, domain.PrecisionExact, p.Birth.TimePrecision)
	assert.InDelta(t, 121.565, p.Birth.Longitude, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM profiles").WillReturnRows(sqlmock.NewRows(profileCols))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID_DatabaseError(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM profiles").WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestListIDs(t *testing.T) {
	repo, mock := newRepo(t)
	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT id FROM profiles WHERE id > \\$1 ORDER BY id LIMIT \\$2").
		WithArgs(uuid.Nil, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(a.String()).AddRow(b.String()))

	ids, err := repo.ListIDs(context.Background(), uuid.Nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)
}

func TestCreateTx(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := &domain.Profile{
		ID:     uuid.New(),
		Name:   "A",
		Locale: domain.LocaleEn,
		Birth: domain.BirthInput{
			DateTime:      time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
			Latitude:      51.5,
			Longitude:     -0.12,
			Gender:        domain.GenderMale,
			TimePrecision: domain.PrecisionUnknown,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO profiles \\(id, name, locale, birth_datetime, latitude, longitude, gender, time_precision, created_at, updated_at\\)").
		WithArgs(profile.ID, "A", "en", profile.Birth.DateTime, 51.5, -0.12, "male", "unknown", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.WithTransaction(context.Background(), func(ctx context.Context, tx persistence.Transaction) error {
		return repo.CreateTx(ctx, tx, profile)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
