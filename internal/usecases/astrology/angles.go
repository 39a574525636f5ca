package astrology

import "math"

func normalize(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// separation кратчайшее угловое расстояние, [0,180]
func separation(a, b float64) float64 {
	d := math.Abs(normalize(a) - normalize(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// signedDelta разность b-a, приведённая в (-180,180]
func signedDelta(a, b float64) float64 {
	d := normalize(b - a)
	if d > 180 {
		d -= 360
	}
	return d
}

func rad(d float64) float64 { return d * math.Pi / 180 }
func deg(r float64) float64 { return r * 180 / math.Pi }
