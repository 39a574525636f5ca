package domain

import (
	"time"

	"github.com/google/uuid"
)

// EngineVersion версия вычислительного ядра; карты старых версий пересчитываются
const EngineVersion = "1.0.0"

type Profile struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Locale    Locale     `json:"locale"`
	Birth     BirthInput `json:"birth"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NatalChart объединённая карта; одна из ветвей может отсутствовать при частичном отказе
type NatalChart struct {
	ProfileID     uuid.UUID      `json:"profile_id"`
	Astrology     *AstrologyData `json:"astrology_data"`
	Bazi          *BaziData      `json:"bazi_data"`
	Warnings      []string       `json:"warnings,omitempty"`
	EngineVersion string         `json:"engine_version"`
	ComputedAt    time.Time      `json:"computed_at"`
}

// IsPartial true если одна из ветвей не посчиталась
func (c *NatalChart) IsPartial() bool {
	return c.Astrology == nil || c.Bazi == nil
}
