package fortune

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/persistence"
	"github.com/sensa-ai-tech/OATH/internal/ports/service"
)

const maxNameLength = 64

// CreateProfile валидирует вход, считает карту и сохраняет профиль с картой в одной транзакции
func (s *Service) CreateProfile(ctx context.Context, in service.CreateProfileInput) (*domain.Profile, *domain.NatalChart, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, nil, domain.NewValidationError(domain.CodeMissingField, "name", "is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, nil, domain.NewValidationError(domain.CodeInvalidFormat, "name", "is too long")
	}

	locale := in.Locale
	if locale == "" {
		locale = domain.LocaleZhTW
	}
	if !locale.IsValid() {
		return nil, nil, domain.NewValidationError(domain.CodeInvalidFormat, "locale", "must be zh-TW, zh-CN or en")
	}

	if err := in.Birth.Validate(); err != nil {
		return nil, nil, err
	}

	now := s.now().UTC()
	profile := &domain.Profile{
		ID:        uuid.New(),
		Name:      name,
		Locale:    locale,
		Birth:     in.Birth,
		CreatedAt: now,
		UpdatedAt: now,
	}

	chart, err := s.computeNatal(ctx, profile.ID, in.Birth)
	if err != nil {
		return nil, nil, err
	}

	err = s.ProfileRepo.WithTransaction(ctx, func(ctx context.Context, tx persistence.Transaction) error {
		if err := s.ProfileRepo.CreateTx(ctx, tx, profile); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		if err := s.ChartRepo.UpsertTx(ctx, tx, chart); err != nil {
			return fmt.Errorf("failed to save natal chart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.Log.Info("profile created",
		"profile_id", profile.ID,
		"locale", profile.Locale,
		"time_precision", profile.Birth.TimePrecision,
		"partial_chart", chart.IsPartial(),
	)

	s.publishNatal(ctx, chart)
	return profile, chart, nil
}
