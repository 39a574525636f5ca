package profileRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/persistence"
	ports "github.com/sensa-ai-tech/OATH/internal/ports/repository"
)

type profileColumns struct {
	TableName     string
	ID            string
	Name          string
	Locale        string
	BirthDateTime string
	Latitude      string
	Longitude     string
	Gender        string
	TimePrecision string
	CreatedAt     string
	UpdatedAt     string
}

// profileRow плоское представление профиля для sqlx
type profileRow struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	Locale        string    `db:"locale"`
	BirthDateTime time.Time `db:"birth_datetime"`
	Latitude      float64   `db:"latitude"`
	Longitude     float64   `db:"longitude"`
	Gender        string    `db:"gender"`
	TimePrecision string    `db:"time_precision"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r profileRow) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:     r.ID,
		Name:   r.Name,
		Locale: domain.Locale(r.Locale),
		Birth: domain.BirthInput{
			DateTime:      r.BirthDateTime.UTC(),
			Latitude:      r.Latitude,
			Longitude:     r.Longitude,
			Gender:        domain.Gender(r.Gender),
			TimePrecision: domain.TimePrecision(r.TimePrecision),
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type Repository struct {
	db      persistence.Database
	Log     *slog.Logger
	columns profileColumns
}

// New создаёт репозиторий профилей
func New(db persistence.Database, log *slog.Logger) ports.IProfileRepo {
	cols := profileColumns{
		TableName:     "profiles",
		ID:            "id",
		Name:          "name",
		Locale:        "locale",
		BirthDateTime: "birth_datetime",
		Latitude:      "latitude",
		Longitude:     "longitude",
		Gender:        "gender",
		TimePrecision: "time_precision",
		CreatedAt:     "created_at",
		UpdatedAt:     "updated_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.Name,
		r.columns.Locale,
		r.columns.BirthDateTime,
		r.columns.Latitude,
		r.columns.Longitude,
		r.columns.Gender,
		r.columns.TimePrecision,
		r.columns.CreatedAt,
		r.columns.UpdatedAt)
}

// GetByID профиль по id, domain.ErrNotFound если его нет
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var row profileRow
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID)
	err := r.db.Get(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("profile not found", "profile_id", id)
			return nil, fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
		}
		r.Log.Error("failed to get profile by id",
			"error", err,
			"profile_id", id)
		return nil, fmt.Errorf("failed to get profile by id: %w", err)
	}
	return row.toDomain(), nil
}

// ListIDs страница id по возрастанию после afterID
func (r *Repository) ListIDs(ctx context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s > $1 ORDER BY %s LIMIT $2`,
		r.columns.ID,
		r.columns.TableName,
		r.columns.ID,
		r.columns.ID)
	var ids []uuid.UUID
	if err := r.db.Select(ctx, &ids, query, afterID, limit); err != nil {
		r.Log.Error("failed to list profile ids", "error", err, "after_id", afterID)
		return nil, fmt.Errorf("failed to list profile ids: %w", err)
	}
	return ids, nil
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error {
	return r.db.WithTransaction(ctx, fn)
}

// CreateTx вставляет профиль в рамках транзакции
func (r *Repository) CreateTx(ctx context.Context, tx persistence.Transaction, profile *domain.Profile) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		r.columns.TableName,
		r.allColumns())
	err := tx.Exec(ctx, query,
		profile.ID,
		profile.Name,
		string(profile.Locale),
		profile.Birth.DateTime.UTC(),
		profile.Birth.Latitude,
		profile.Birth.Longitude,
		string(profile.Birth.Gender),
		string(profile.Birth.TimePrecision),
		profile.CreatedAt,
		profile.UpdatedAt)
	if err != nil {
		r.Log.Error("failed to create profile",
			"error", err,
			"profile_id", profile.ID)
		return fmt.Errorf("failed to create profile: %w", err)
	}
	r.Log.Debug("profile created successfully", "profile_id", profile.ID)
	return nil
}
