package fortune

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// ComputeNatalChart расчёт без сохранения
func (s *Service) ComputeNatalChart(ctx context.Context, birth domain.BirthInput) (*domain.NatalChart, error) {
	if err := birth.Validate(); err != nil {
		return nil, err
	}
	return s.computeNatal(ctx, uuid.Nil, birth)
}

// computeNatal считает западную карту и бацзы параллельно.
// Отказ одной ветви даёт частичный результат с предупреждением, отказ обеих - ComputationError.
func (s *Service) computeNatal(ctx context.Context, profileID uuid.UUID, birth domain.BirthInput) (*domain.NatalChart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started := time.Now()

	var (
		astro    *domain.AstrologyData
		bz       *domain.BaziData
		astroErr error
		baziErr  error
		g        errgroup.Group
	)

	// ветви не отменяют друг друга, поэтому ошибки возвращаются через переменные
	g.Go(func() error {
		astroErr = recoverBranch("astrology", func() (err error) {
			astro, err = s.Engines.Astrology.ComputeNatalChart(birth.DateTime, birth.Latitude, birth.Longitude)
			return err
		})
		return nil
	})
	g.Go(func() error {
		baziErr = recoverBranch("bazi", func() (err error) {
			bz, err = s.Engines.Bazi.ComputeBazi(birth.DateTime, birth.Longitude, birth.Gender, birth.TimePrecision)
			return err
		})
		return nil
	})
	_ = g.Wait()

	metrics.NatalComputeDuration.Observe(time.Since(started).Seconds())

	chart := &domain.NatalChart{
		ProfileID:     profileID,
		Astrology:     astro,
		Bazi:          bz,
		EngineVersion: domain.EngineVersion,
		ComputedAt:    s.now().UTC(),
	}

	if astroErr != nil {
		metrics.NatalBranchFailures.WithLabelValues("astrology").Inc()
		chart.Astrology = nil
		chart.Warnings = append(chart.Warnings, partialWarning("astrology", astroErr))
	}
	if baziErr != nil {
		metrics.NatalBranchFailures.WithLabelValues("bazi").Inc()
		chart.Bazi = nil
		chart.Warnings = append(chart.Warnings, partialWarning("bazi", baziErr))
	}

	if astroErr != nil && baziErr != nil {
		s.Log.Error("natal chart computation failed",
			"profile_id", profileID,
			"astrology_error", astroErr,
			"bazi_error", baziErr,
		)
		return nil, domain.NewComputationError("natal", domain.CodeComputationFailed, errors.Join(astroErr, baziErr))
	}

	if len(chart.Warnings) > 0 {
		s.Log.Warn("natal chart is partial",
			"profile_id", profileID,
			"warnings", chart.Warnings,
			"astrology_error", astroErr,
			"bazi_error", baziErr,
		)
	}

	return chart, nil
}

// recoverBranch паника в ветви становится ошибкой этой ветви
func recoverBranch(branch string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domain.NewComputationError(branch, domain.CodeComputationFailed, fmt.Errorf("panic: %v", r))
		}
	}()
	return fn()
}

func partialWarning(branch string, err error) string {
	return fmt.Sprintf("%s: %s data unavailable (%s)", domain.CodePartialResult, branch, domain.CodeOf(err))
}

// GetNatalChart сохранённая карта профиля
func (s *Service) GetNatalChart(ctx context.Context, profileID uuid.UUID) (*domain.NatalChart, error) {
	chart, err := s.ChartRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get natal chart: %w", err)
	}
	return chart, nil
}

// RecomputeNatalChart пересчитывает и перезаписывает карту профиля
func (s *Service) RecomputeNatalChart(ctx context.Context, profileID uuid.UUID) error {
	profile, err := s.ProfileRepo.GetByID(ctx, profileID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	chart, err := s.computeNatal(ctx, profile.ID, profile.Birth)
	if err != nil {
		return err
	}

	if err := s.ChartRepo.Upsert(ctx, chart); err != nil {
		return fmt.Errorf("failed to save natal chart: %w", err)
	}

	s.Log.Info("natal chart recomputed",
		"profile_id", profileID,
		"engine_version", chart.EngineVersion,
		"partial", chart.IsPartial(),
	)

	s.publishNatal(ctx, chart)
	return nil
}

func (s *Service) publishNatal(ctx context.Context, chart *domain.NatalChart) {
	if s.Events == nil {
		return
	}
	if err := s.Events.NatalComputed(ctx, chart); err != nil {
		s.Log.Warn("failed to publish natal computed event",
			"profile_id", chart.ProfileID,
			"error", err,
		)
	}
}
