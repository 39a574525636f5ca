package bazi

import (
	"math"
	"time"
)

// TrueSolarTime сдвигает момент на долготную поправку и уравнение времени.
// Результат - местное истинное солнечное время в UTC-полях.
func TrueSolarTime(t time.Time, lon float64) time.Time {
	t = t.UTC()
	n := float64(t.YearDay())
	b := 2 * math.Pi * (n - 81) / 365
	eot := 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)

	offsetMinutes := lon/15*60 + eot
	return t.Add(time.Duration(offsetMinutes * float64(time.Minute)))
}
