package lunar

import (
	"fmt"
	"time"

	lunarcal "github.com/6tail/lunar-go/calendar"
	"github.com/sensa-ai-tech/OATH/internal/ports/calendar"
)

// Calendar шестидесятеричный календарь поверх lunar-go; поля t читаются как местное время (wall-clock)
type Calendar struct{}

func New() calendar.Calendar {
	return &Calendar{}
}

func (c *Calendar) FourPillars(t time.Time) (fp calendar.FourPillars, err error) {
	defer recoverInto(&err)

	ec := eightChar(t)
	return calendar.FourPillars{
		Year:  calendar.Pillar{Stem: ec.GetYearGan(), Branch: ec.GetYearZhi(), TenGod: ec.GetYearShiShenGan()},
		Month: calendar.Pillar{Stem: ec.GetMonthGan(), Branch: ec.GetMonthZhi(), TenGod: ec.GetMonthShiShenGan()},
		Day:   calendar.Pillar{Stem: ec.GetDayGan(), Branch: ec.GetDayZhi(), TenGod: ec.GetDayShiShenGan()},
		Hour:  calendar.Pillar{Stem: ec.GetTimeGan(), Branch: ec.GetTimeZhi(), TenGod: ec.GetTimeShiShenGan()},
	}, nil
}

// DayPillar столп календарной даты t, время суток не учитывается
func (c *Calendar) DayPillar(t time.Time) (p calendar.Pillar, err error) {
	defer recoverInto(&err)

	ec := eightChar(time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC))
	return calendar.Pillar{Stem: ec.GetDayGan(), Branch: ec.GetDayZhi(), TenGod: ec.GetDayShiShenGan()}, nil
}

// LuckPillars count записей 大运, первая - период до начала отсчёта с пустыми символами
func (c *Calendar) LuckPillars(t time.Time, male bool, count int) (entries []calendar.LuckEntry, err error) {
	defer recoverInto(&err)

	gender := 0
	if male {
		gender = 1
	}

	daYun := eightChar(t).GetYun(gender).GetDaYunBy(count)
	entries = make([]calendar.LuckEntry, 0, len(daYun))
	for _, dy := range daYun {
		e := calendar.LuckEntry{StartAge: dy.GetStartAge(), EndAge: dy.GetEndAge()}
		if gz := []rune(dy.GetGanZhi()); len(gz) == 2 {
			e.Stem, e.Branch = string(gz[0]), string(gz[1])
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func eightChar(t time.Time) *lunarcal.EightChar {
	solar := lunarcal.NewSolar(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	return solar.GetLunar().GetEightChar()
}

// recoverInto lunar-go паникует на недопустимых датах
func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("lunar calendar: %v", r)
	}
}
