package profileController

import (
	"time"

	"github.com/sensa-ai-tech/OATH/internal/domain"
)

// BirthReq поля-указатели, чтобы отличить отсутствующее поле от нулевого
type BirthReq struct {
	BirthDatetime *time.Time `json:"birth_datetime"`
	Latitude      *float64   `json:"latitude"`
	Longitude     *float64   `json:"longitude"`
	Gender        string     `json:"gender"`
	TimePrecision string     `json:"time_precision"`
}

func (r BirthReq) toDomain() (domain.BirthInput, error) {
	switch {
	case r.BirthDatetime == nil:
		return domain.BirthInput{}, domain.NewValidationError(domain.CodeMissingField, "birth_datetime", "is required")
	case r.Latitude == nil:
		return domain.BirthInput{}, domain.NewValidationError(domain.CodeMissingField, "latitude", "is required")
	case r.Longitude == nil:
		return domain.BirthInput{}, domain.NewValidationError(domain.CodeMissingField, "longitude", "is required")
	case r.Gender == "":
		return domain.BirthInput{}, domain.NewValidationError(domain.CodeMissingField, "gender", "is required")
	}

	precision := domain.TimePrecision(r.TimePrecision)
	if precision == "" {
		precision = domain.PrecisionExact
	}

	in := domain.BirthInput{
		DateTime:      *r.BirthDatetime,
		Latitude:      *r.Latitude,
		Longitude:     *r.Longitude,
		Gender:        domain.Gender(r.Gender),
		TimePrecision: precision,
	}
	return in, in.Validate()
}

type CreateProfileReq struct {
	Name   string `json:"name"`
	Locale string `json:"locale"`
	BirthReq
}

type ProfileResp struct {
	Profile    *domain.Profile    `json:"profile"`
	NatalChart *domain.NatalChart `json:"natal_chart"`
}
