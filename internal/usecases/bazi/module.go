package bazi

import (
	"log/slog"

	"github.com/sensa-ai-tech/OATH/internal/ports/calendar"
)

// defaultLuckPillars количество десятилетий удачи
const defaultLuckPillars = 10

// Service четыре столпа, господин дня, столпы удачи и анализ дня
type Service struct {
	Cal calendar.Calendar
	Log *slog.Logger
}

func New(cal calendar.Calendar, log *slog.Logger) *Service {
	return &Service{
		Cal: cal,
		Log: log,
	}
}
