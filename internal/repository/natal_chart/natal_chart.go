package natalChartRepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/persistence"
	ports "github.com/sensa-ai-tech/OATH/internal/ports/repository"
)

type chartColumns struct {
	TableName     string
	ProfileID     string
	AstrologyData string
	BaziData      string
	Warnings      string
	EngineVersion string
	ComputedAt    string
}

// chartRow обе ветви карты хранятся в JSONB, NULL при частичном результате
type chartRow struct {
	ProfileID     uuid.UUID `db:"profile_id"`
	AstrologyData []byte    `db:"astrology_data"`
	BaziData      []byte    `db:"bazi_data"`
	Warnings      []byte    `db:"warnings"`
	EngineVersion string    `db:"engine_version"`
	ComputedAt    time.Time `db:"computed_at"`
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns chartColumns
}

// New создаёт репозиторий натальных карт
func New(db persistence.Persistence, log *slog.Logger) ports.INatalChartRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: chartColumns{
			TableName:     "natal_charts",
			ProfileID:     "profile_id",
			AstrologyData: "astrology_data",
			BaziData:      "bazi_data",
			Warnings:      "warnings",
			EngineVersion: "engine_version",
			ComputedAt:    "computed_at",
		},
	}
}

func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		r.columns.ProfileID,
		r.columns.AstrologyData,
		r.columns.BaziData,
		r.columns.Warnings,
		r.columns.EngineVersion,
		r.columns.ComputedAt)
}

func (r *Repository) GetByProfileID(ctx context.Context, profileID uuid.UUID) (*domain.NatalChart, error) {
	var row chartRow
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ProfileID)
	if err := r.db.Get(ctx, &row, query, profileID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("natal chart %s: %w", profileID, domain.ErrNotFound)
		}
		r.Log.Error("failed to get natal chart",
			"error", err,
			"profile_id", profileID)
		return nil, fmt.Errorf("failed to get natal chart: %w", err)
	}

	chart, err := decodeChart(row)
	if err != nil {
		r.Log.Error("failed to decode natal chart", "error", err, "profile_id", profileID)
		return nil, err
	}
	return chart, nil
}

func decodeChart(row chartRow) (*domain.NatalChart, error) {
	chart := &domain.NatalChart{
		ProfileID:     row.ProfileID,
		EngineVersion: row.EngineVersion,
		ComputedAt:    row.ComputedAt.UTC(),
	}
	if len(row.AstrologyData) > 0 {
		chart.Astrology = &domain.AstrologyData{}
		if err := json.Unmarshal(row.AstrologyData, chart.Astrology); err != nil {
			return nil, fmt.Errorf("failed to decode astrology data: %w", err)
		}
	}
	if len(row.BaziData) > 0 {
		chart.Bazi = &domain.BaziData{}
		if err := json.Unmarshal(row.BaziData, chart.Bazi); err != nil {
			return nil, fmt.Errorf("failed to decode bazi data: %w", err)
		}
	}
	if len(row.Warnings) > 0 {
		if err := json.Unmarshal(row.Warnings, &chart.Warnings); err != nil {
			return nil, fmt.Errorf("failed to decode warnings: %w", err)
		}
	}
	return chart, nil
}

func (r *Repository) Upsert(ctx context.Context, chart *domain.NatalChart) error {
	return r.upsert(ctx, r.db, chart)
}

func (r *Repository) UpsertTx(ctx context.Context, tx persistence.Transaction, chart *domain.NatalChart) error {
	return r.upsert(ctx, tx, chart)
}

func (r *Repository) upsert(ctx context.Context, db persistence.Persistence, chart *domain.NatalChart) error {
	astro, err := jsonArg(chart.Astrology, chart.Astrology == nil)
	if err != nil {
		return err
	}
	bz, err := jsonArg(chart.Bazi, chart.Bazi == nil)
	if err != nil {
		return err
	}
	warnings := chart.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	warn, err := jsonArg(warnings, false)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%s) DO UPDATE SET
		%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		r.columns.TableName,
		r.allColumns(),
		r.columns.ProfileID,
		r.columns.AstrologyData, r.columns.AstrologyData,
		r.columns.BaziData, r.columns.BaziData,
		r.columns.Warnings, r.columns.Warnings,
		r.columns.EngineVersion, r.columns.EngineVersion,
		r.columns.ComputedAt, r.columns.ComputedAt)
	err = db.Exec(ctx, query,
		chart.ProfileID,
		astro,
		bz,
		warn,
		chart.EngineVersion,
		chart.ComputedAt)
	if err != nil {
		r.Log.Error("failed to upsert natal chart",
			"error", err,
			"profile_id", chart.ProfileID)
		return fmt.Errorf("failed to upsert natal chart: %w", err)
	}
	r.Log.Debug("natal chart saved", "profile_id", chart.ProfileID, "partial", chart.IsPartial())
	return nil
}

// jsonArg JSON-строка для JSONB или nil для NULL
func jsonArg(v interface{}, isNil bool) (interface{}, error) {
	if isNil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json column: %w", err)
	}
	return string(data), nil
}

func (r *Repository) ListStaleProfileIDs(ctx context.Context, engineVersion string, limit int) ([]uuid.UUID, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s <> $1 ORDER BY %s LIMIT $2`,
		r.columns.ProfileID,
		r.columns.TableName,
		r.columns.EngineVersion,
		r.columns.ComputedAt)
	var ids []uuid.UUID
	if err := r.db.Select(ctx, &ids, query, engineVersion, limit); err != nil {
		r.Log.Error("failed to list stale natal charts", "error", err)
		return nil, fmt.Errorf("failed to list stale natal charts: %w", err)
	}
	return ids, nil
}
