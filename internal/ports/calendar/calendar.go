package calendar

import "time"

// Pillar сырые символы столпа: иероглифы ствола и ветви, десять богов относительно господина дня
type Pillar struct {
	Stem   string
	Branch string
	TenGod string
}

// FourPillars результат перевода в шестидесятеричный календарь
type FourPillars struct {
	Year  Pillar
	Month Pillar
	Day   Pillar
	Hour  Pillar
}

// LuckEntry один десятилетний столп; пустые Stem/Branch означают период до начала отсчёта.
// Возраст считается по годам с 1 в год рождения
type LuckEntry struct {
	Stem     string
	Branch   string
	StartAge int
	EndAge   int
}

// Calendar лунно-солнечный календарь; время передаётся как UTC wall-clock
type Calendar interface {
	FourPillars(t time.Time) (FourPillars, error)
	DayPillar(t time.Time) (Pillar, error)
	LuckPillars(t time.Time, male bool, count int) ([]LuckEntry, error)
}
