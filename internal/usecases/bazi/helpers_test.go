package bazi

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/sensa-ai-tech/OATH/internal/ports/calendar"
)

// fakeCalendar запоминает последний запрошенный момент
type fakeCalendar struct {
	pillars calendar.FourPillars
	day     calendar.Pillar
	luck    []calendar.LuckEntry
	fail    bool

	lastInstant time.Time
	lastMale    bool
}

func (f *fakeCalendar) FourPillars(t time.Time) (calendar.FourPillars, error) {
	f.lastInstant = t
	if f.fail {
		return calendar.FourPillars{}, errors.New("calendar failure")
	}
	return f.pillars, nil
}

func (f *fakeCalendar) DayPillar(time.Time) (calendar.Pillar, error) {
	if f.fail {
		return calendar.Pillar{}, errors.New("calendar failure")
	}
	return f.day, nil
}

func (f *fakeCalendar) LuckPillars(_ time.Time, male bool, _ int) ([]calendar.LuckEntry, error) {
	f.lastMale = male
	return f.luck, nil
}

// 甲子 день, год 庚午, месяц 辛巳, час 丙寅
func sampleCalendar() *fakeCalendar {
	return &fakeCalendar{
		pillars: calendar.FourPillars{
			Year:  calendar.Pillar{Stem: "庚", Branch: "午", TenGod: "七殺"},
			Month: calendar.Pillar{Stem: "辛", Branch: "巳", TenGod: "正官"},
			Day:   calendar.Pillar{Stem: "甲", Branch: "子", TenGod: "日主"},
			Hour:  calendar.Pillar{Stem: "丙", Branch: "寅", TenGod: "食神"},
		},
		day: calendar.Pillar{Stem: "丙", Branch: "午"},
		luck: []calendar.LuckEntry{
			{StartAge: 0, EndAge: 7},
			{Stem: "壬", Branch: "午", StartAge: 7, EndAge: 16},
			{Stem: "癸", Branch: "未", StartAge: 17, EndAge: 26},
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
