package domain

import (
	"time"

	"github.com/google/uuid"
)

// FortuneTemplate шаблон ежедневного сообщения; message и action поддерживают {{variable}}
type FortuneTemplate struct {
	ID               string `json:"id" yaml:"id"`
	Tags             []Tag  `json:"tags" yaml:"tags"`
	Theme            string `json:"theme" yaml:"theme"`
	Message          string `json:"message" yaml:"message"`
	ActionSuggestion string `json:"action_suggestion" yaml:"action_suggestion"`
}

// HasTag проверяет наличие тега у шаблона
func (t FortuneTemplate) HasTag(tag Tag) bool {
	for _, tt := range t.Tags {
		if tt == tag {
			return true
		}
	}
	return false
}

// TemplateVariable закрытый набор подставляемых переменных
type TemplateVariable string

const (
	VarSunSign    TemplateVariable = "sunSign"
	VarMoonSign   TemplateVariable = "moonSign"
	VarDayElement TemplateVariable = "dayElement"
	VarDayMaster  TemplateVariable = "dayMaster"
	VarUserName   TemplateVariable = "userName"
)

func AllTemplateVariables() []TemplateVariable {
	return []TemplateVariable{VarSunSign, VarMoonSign, VarDayElement, VarDayMaster, VarUserName}
}

func (v TemplateVariable) IsValid() bool {
	switch v {
	case VarSunSign, VarMoonSign, VarDayElement, VarDayMaster, VarUserName:
		return true
	default:
		return false
	}
}

// FortuneLevel ступень деградации при генерации
type FortuneLevel string

const (
	LevelPolished    FortuneLevel = "L1" // текст после LLM
	LevelTemplate    FortuneLevel = "L2" // подобранный шаблон
	LevelFallback    FortuneLevel = "L3" // шаблон с тегом fallback
	LevelStatic      FortuneLevel = "L4" // фиксированное сообщение
	LevelCached      FortuneLevel = "L5" // последний успешный результат
	LevelUnavailable FortuneLevel = "L6" // временно недоступно
)

func AllFortuneLevels() []FortuneLevel {
	return []FortuneLevel{LevelPolished, LevelTemplate, LevelFallback, LevelStatic, LevelCached, LevelUnavailable}
}

func (l FortuneLevel) IsValid() bool {
	switch l {
	case LevelPolished, LevelTemplate, LevelFallback, LevelStatic, LevelCached, LevelUnavailable:
		return true
	default:
		return false
	}
}

type HelpResource struct {
	Name  string `json:"name" yaml:"name"`
	Phone string `json:"phone" yaml:"phone"`
}

type SafetyResult struct {
	Triggered      bool           `json:"triggered"`
	MatchedKeyword string         `json:"-"` // только для внутренних логов
	Resources      []HelpResource `json:"resources,omitempty"`
}

type GeneratedFortune struct {
	TemplateID       string         `json:"template_id"`
	Message          string         `json:"message"`
	ActionSuggestion string         `json:"action_suggestion"`
	SafetyTriggered  bool           `json:"safety_triggered"`
	Resources        []HelpResource `json:"resources,omitempty"`
	MatchedTags      []Tag          `json:"matched_tags"`
	Level            FortuneLevel   `json:"level"`

	// заполняются при срабатывании фильтра, наружу не отдаются
	SafetyKeyword      string `json:"-"`
	RejectedTemplateID string `json:"-"`
}

type Locale string

const (
	LocaleZhTW Locale = "zh-TW"
	LocaleZhCN Locale = "zh-CN"
	LocaleEn   Locale = "en"
)

func AllLocales() []Locale {
	return []Locale{LocaleZhTW, LocaleZhCN, LocaleEn}
}

func (l Locale) IsValid() bool {
	switch l {
	case LocaleZhTW, LocaleZhCN, LocaleEn:
		return true
	default:
		return false
	}
}

type PolishRequest struct {
	TemplateMessage  string     `json:"template_message"`
	ActionSuggestion string     `json:"action_suggestion"`
	SunSign          ZodiacSign `json:"sun_sign"`
	DayElement       Element    `json:"day_element"`
	Locale           Locale     `json:"locale"`
}

type PolishResponse struct {
	PolishedMessage string  `json:"polished_message"`
	PolishedAction  string  `json:"polished_action"`
	TokensInput     int     `json:"tokens_input"`
	TokensOutput    int     `json:"tokens_output"`
	Model           string  `json:"model"`
	CostUSD         float64 `json:"cost_usd"`
}

// DailyFortune доставленный пользователю прогноз на дату
type DailyFortune struct {
	ID              uuid.UUID          `json:"id"`
	ProfileID       uuid.UUID          `json:"profile_id"`
	FortuneDate     string             `json:"fortune_date"`
	Transit         *DailyTransit      `json:"astrology_transit,omitempty"`
	BaziDay         *DailyBaziAnalysis `json:"bazi_day_analysis,omitempty"`
	Fortune         GeneratedFortune   `json:"fortune"`
	TemplateMessage string             `json:"template_message"`
	Polish          *PolishResponse    `json:"polish,omitempty"`
	EngineVersion   string             `json:"engine_version"`
	Warnings        []string           `json:"warnings,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}
