package dailyFortuneRepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/persistence"
	ports "github.com/sensa-ai-tech/OATH/internal/ports/repository"
)

type fortuneColumns struct {
	TableName     string
	ID            string
	ProfileID     string
	FortuneDate   string
	Level         string
	TemplateID    string
	Payload       string
	EngineVersion string
	CreatedAt     string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns fortuneColumns
}

// New создаёт репозиторий выданных прогнозов; полный прогноз хранится в payload
func New(db persistence.Persistence, log *slog.Logger) ports.IDailyFortuneRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: fortuneColumns{
			TableName:     "daily_fortunes",
			ID:            "id",
			ProfileID:     "profile_id",
			FortuneDate:   "fortune_date",
			Level:         "level",
			TemplateID:    "template_id",
			Payload:       "payload",
			EngineVersion: "engine_version",
			CreatedAt:     "created_at",
		},
	}
}

// Save одна запись на профиль и дату, повторная генерация перезаписывает
func (r *Repository) Save(ctx context.Context, fortune *domain.DailyFortune) error {
	payload, err := json.Marshal(fortune)
	if err != nil {
		return fmt.Errorf("failed to encode daily fortune: %w", err)
	}

	c := r.columns
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (%s, %s) DO UPDATE SET
		%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		c.TableName,
		c.ID, c.ProfileID, c.FortuneDate, c.Level, c.TemplateID, c.Payload, c.EngineVersion, c.CreatedAt,
		c.ProfileID, c.FortuneDate,
		c.ID, c.ID,
		c.Level, c.Level,
		c.TemplateID, c.TemplateID,
		c.Payload, c.Payload,
		c.EngineVersion, c.EngineVersion,
		c.CreatedAt, c.CreatedAt)
	err = r.db.Exec(ctx, query,
		fortune.ID,
		fortune.ProfileID,
		fortune.FortuneDate,
		string(fortune.Fortune.Level),
		fortune.Fortune.TemplateID,
		string(payload),
		fortune.EngineVersion,
		fortune.CreatedAt)
	if err != nil {
		r.Log.Error("failed to save daily fortune",
			"error", err,
			"profile_id", fortune.ProfileID,
			"date", fortune.FortuneDate)
		return fmt.Errorf("failed to save daily fortune: %w", err)
	}
	return nil
}

func (r *Repository) GetByDate(ctx context.Context, profileID uuid.UUID, date string) (*domain.DailyFortune, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		r.columns.Payload,
		r.columns.TableName,
		r.columns.ProfileID,
		r.columns.FortuneDate)
	return r.getOne(ctx, query, profileID, date)
}

// GetLatest последний сохранённый прогноз профиля
func (r *Repository) GetLatest(ctx context.Context, profileID uuid.UUID) (*domain.DailyFortune, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC, %s DESC LIMIT 1`,
		r.columns.Payload,
		r.columns.TableName,
		r.columns.ProfileID,
		r.columns.FortuneDate,
		r.columns.CreatedAt)
	return r.getOne(ctx, query, profileID)
}

func (r *Repository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.DailyFortune, error) {
	var payload []byte
	if err := r.db.Get(ctx, &payload, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("daily fortune: %w", domain.ErrNotFound)
		}
		r.Log.Error("failed to get daily fortune", "error", err)
		return nil, fmt.Errorf("failed to get daily fortune: %w", err)
	}

	var fortune domain.DailyFortune
	if err := json.Unmarshal(payload, &fortune); err != nil {
		return nil, fmt.Errorf("failed to decode daily fortune: %w", err)
	}
	return &fortune, nil
}
