package astrology

import (
	"math"

	"github.com/sensa-ai-tech/OATH/internal/domain"
)

// наклон эклиптики J2000
const obliquity = 23.4393

// computeHouses куспиды по звёздному времени: углы карты и трисекция квадрантов
func computeHouses(gstHours, lat, lon float64) domain.HouseData {
	ramc := normalize((gstHours + lon/15) * 15)
	r, e, phi := rad(ramc), rad(obliquity), rad(lat)

	asc := normalize(deg(math.Atan2(-math.Cos(r), math.Sin(r)*math.Cos(e)+math.Tan(phi)*math.Sin(e))))
	mc := normalize(deg(math.Atan2(math.Sin(r), math.Cos(r)*math.Cos(e))))
	ic := normalize(mc + 180)
	dsc := normalize(asc + 180)

	var c [12]float64
	c[0], c[3], c[6], c[9] = asc, ic, dsc, mc

	trisect := func(from, to float64, first, second int) {
		arc := normalize(to - from)
		c[first] = normalize(from + arc/3)
		c[second] = normalize(from + 2*arc/3)
	}
	trisect(mc, asc, 10, 11)
	trisect(asc, ic, 1, 2)
	trisect(ic, dsc, 4, 5)
	trisect(dsc, mc, 7, 8)

	return domain.HouseData{Ascendant: asc, Midheaven: mc, Cusps: c}
}

// houseOf дом по вхождению долготы в интервал куспидов с учётом перехода через 0°
func houseOf(lon float64, cusps [12]float64) int {
	for i := 0; i < 12; i++ {
		cur, next := cusps[i], cusps[(i+1)%12]
		if cur < next {
			if lon >= cur && lon < next {
				return i + 1
			}
		} else if lon >= cur || lon < next {
			return i + 1
		}
	}
	return 1
}
