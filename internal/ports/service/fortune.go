package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
)

type CreateProfileInput struct {
	Name   string
	Locale domain.Locale
	Birth  domain.BirthInput
}

type DailyFortuneOptions struct {
	Polish bool
}

// IFortuneService сценарии профиля и ежедневного прогноза
type IFortuneService interface {
	CreateProfile(ctx context.Context, in CreateProfileInput) (*domain.Profile, *domain.NatalChart, error)
	ComputeNatalChart(ctx context.Context, birth domain.BirthInput) (*domain.NatalChart, error)
	GetNatalChart(ctx context.Context, profileID uuid.UUID) (*domain.NatalChart, error)
	RecomputeNatalChart(ctx context.Context, profileID uuid.UUID) error
	DailyFortune(ctx context.Context, profileID uuid.UUID, date time.Time, opts DailyFortuneOptions) (*domain.DailyFortune, error)
}
