package domain

import (
	"math"
	"time"
)

// Gender пол, влияет на направление столпов удачи
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func AllGenders() []Gender {
	return []Gender{GenderMale, GenderFemale}
}

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale:
		return true
	default:
		return false
	}
}

// TimePrecision насколько точно известно время рождения
type TimePrecision string

const (
	PrecisionExact       TimePrecision = "exact"       // точное время, применяется истинное солнечное время
	PrecisionApproximate TimePrecision = "approximate" // примерное, без коррекции
	PrecisionUnknown     TimePrecision = "unknown"     // часовой столп не строится
)

func AllTimePrecisions() []TimePrecision {
	return []TimePrecision{PrecisionExact, PrecisionApproximate, PrecisionUnknown}
}

func (p TimePrecision) IsValid() bool {
	switch p {
	case PrecisionExact, PrecisionApproximate, PrecisionUnknown:
		return true
	default:
		return false
	}
}

var (
	minBirthDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	maxBirthDate = time.Date(2100, 12, 31, 23, 59, 59, 0, time.UTC)
)

// BirthInput данные рождения
type BirthInput struct {
	DateTime      time.Time     `json:"birth_datetime"`
	Latitude      float64       `json:"latitude"`
	Longitude     float64       `json:"longitude"`
	Gender        Gender        `json:"gender"`
	TimePrecision TimePrecision `json:"time_precision"`
}

// Validate проверяет входные данные до любых вычислений
func (b BirthInput) Validate() error {
	if b.DateTime.IsZero() {
		return NewValidationError(CodeMissingField, "birth_datetime", "is required")
	}
	t := b.DateTime.UTC()
	if t.Before(minBirthDate) || t.After(maxBirthDate) {
		return NewValidationError(CodeInvalidDateRange, "birth_datetime", "must be between 1900 and 2100")
	}
	if math.IsNaN(b.Latitude) || b.Latitude < -90 || b.Latitude > 90 {
		return NewValidationError(CodeInvalidBirthData, "latitude", "must be within [-90, 90]")
	}
	if math.IsNaN(b.Longitude) || b.Longitude < -180 || b.Longitude > 180 {
		return NewValidationError(CodeInvalidBirthData, "longitude", "must be within [-180, 180]")
	}
	if !b.Gender.IsValid() {
		return NewValidationError(CodeInvalidFormat, "gender", "must be male or female")
	}
	if !b.TimePrecision.IsValid() {
		return NewValidationError(CodeInvalidFormat, "time_precision", "must be exact, approximate or unknown")
	}
	return nil
}
