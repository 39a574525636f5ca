package ephemeris

import (
	"fmt"
	"math"
	"time"

	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/ephemeris"
)

const (
	j2000          = 2451545.0
	unixEpochJD    = 2440587.5
	daysPerCentury = 36525.0
	// общая прецессия по долготе, градусов за столетие
	precessionRate = 1.396971
	keplerMaxIter  = 30
	keplerEpsilon  = 1e-12
)

// Keplerian аналитические эфемериды: средние элементы орбит для планет и усечённый ряд для Луны.
// Точности хватает, чтобы уверенно определить знак и дом.
type Keplerian struct{}

func New() ephemeris.Ephemeris {
	return &Keplerian{}
}

// Longitude геоцентрическая эклиптическая долгота на дату, градусы [0,360)
func (k *Keplerian) Longitude(body domain.Planet, t time.Time) (float64, error) {
	T := centuries(t)

	var lon float64
	switch body {
	case domain.PlanetSun:
		ex, ey, _ := heliocentric(earthMoonBarycenter, T)
		lon = deg(math.Atan2(-ey, -ex)) + precessionRate*T
	case domain.PlanetMoon:
		lon = moonLongitude(T)
	default:
		el, ok := planetOrbits[body]
		if !ok {
			return 0, fmt.Errorf("unsupported body: %s", body)
		}
		px, py, _ := heliocentric(el, T)
		ex, ey, _ := heliocentric(earthMoonBarycenter, T)
		lon = deg(math.Atan2(py-ey, px-ex)) + precessionRate*T
	}

	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return 0, fmt.Errorf("non-finite longitude for %s at %s", body, t.Format(time.RFC3339))
	}
	return normalize(lon), nil
}

// SiderealTime GMST в часах (IAU 1982)
func (k *Keplerian) SiderealTime(t time.Time) float64 {
	jd := julianDay(t)
	T := (jd - j2000) / daysPerCentury
	gmst := 280.46061837 + 360.98564736629*(jd-j2000) + 0.000387933*T*T - T*T*T/38710000
	return normalize(gmst) / 15
}

// heliocentric эклиптические координаты J2000 в а.е.
func heliocentric(el orbit, T float64) (x, y, z float64) {
	a := el.a + el.aRate*T
	e := el.e + el.eRate*T
	incl := rad(el.incl + el.inclRate*T)
	meanLon := el.meanLon + el.lonRate*T
	peri := el.peri + el.periRate*T
	node := el.node + el.nodeRate*T

	argPeri := rad(peri - node)
	nodeRad := rad(node)
	M := normalize(meanLon - peri)
	if M > 180 {
		M -= 360
	}

	E := solveKepler(rad(M), e)
	xp := a * (math.Cos(E) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(E)

	cw, sw := math.Cos(argPeri), math.Sin(argPeri)
	cn, sn := math.Cos(nodeRad), math.Sin(nodeRad)
	ci, si := math.Cos(incl), math.Sin(incl)

	x = (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp
	y = (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp
	z = sw*si*xp + cw*si*yp
	return x, y, z
}

// solveKepler уравнение Кеплера методом Ньютона, углы в радианах
func solveKepler(M, e float64) float64 {
	E := M + e*math.Sin(M)
	for i := 0; i < keplerMaxIter; i++ {
		dE := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
		E -= dE
		if math.Abs(dE) < keplerEpsilon {
			break
		}
	}
	return E
}

func moonLongitude(T float64) float64 {
	meanLon := 218.3164477 + 481267.88123421*T
	D := rad(297.8501921 + 445267.1114034*T)
	M := rad(357.5291092 + 35999.0502909*T)
	Mp := rad(134.9633964 + 477198.8675055*T)
	F := rad(93.2720950 + 483202.0175233*T)

	var sum float64
	for _, term := range moonTerms {
		sum += term.amplitude * math.Sin(term.d*D+term.m*M+term.mp*Mp+term.f*F)
	}
	return meanLon + sum/1e6
}

func julianDay(t time.Time) float64 {
	return float64(t.Unix())/86400 + float64(t.Nanosecond())/86400e9 + unixEpochJD
}

func centuries(t time.Time) float64 {
	return (julianDay(t) - j2000) / daysPerCentury
}

func normalize(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func rad(d float64) float64 { return d * math.Pi / 180 }
func deg(r float64) float64 { return r * 180 / math.Pi }
