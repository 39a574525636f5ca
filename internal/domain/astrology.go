package domain

// Planet отслеживаемое тело; ascendant и midheaven - псевдо-позиции углов карты
type Planet string

const (
	PlanetSun      Planet = "sun"
	PlanetMoon     Planet = "moon"
	PlanetMercury  Planet = "mercury"
	PlanetVenus    Planet = "venus"
	PlanetMars     Planet = "mars"
	PlanetJupiter  Planet = "jupiter"
	PlanetSaturn   Planet = "saturn"
	PlanetUranus   Planet = "uranus"
	PlanetNeptune  Planet = "neptune"
	PlanetPluto    Planet = "pluto"
	PointAscendant Planet = "ascendant"
	PointMidheaven Planet = "midheaven"
)

// AllPlanets возвращает десять физических тел в каноническом порядке
func AllPlanets() []Planet {
	return []Planet{
		PlanetSun, PlanetMoon, PlanetMercury, PlanetVenus, PlanetMars,
		PlanetJupiter, PlanetSaturn, PlanetUranus, PlanetNeptune, PlanetPluto,
	}
}

func (p Planet) IsValid() bool {
	switch p {
	case PlanetSun, PlanetMoon, PlanetMercury, PlanetVenus, PlanetMars,
		PlanetJupiter, PlanetSaturn, PlanetUranus, PlanetNeptune, PlanetPluto,
		PointAscendant, PointMidheaven:
		return true
	default:
		return false
	}
}

// IsAngle true для ASC/MC
func (p Planet) IsAngle() bool {
	return p == PointAscendant || p == PointMidheaven
}

type ZodiacSign string

const (
	SignAries       ZodiacSign = "aries"
	SignTaurus      ZodiacSign = "taurus"
	SignGemini      ZodiacSign = "gemini"
	SignCancer      ZodiacSign = "cancer"
	SignLeo         ZodiacSign = "leo"
	SignVirgo       ZodiacSign = "virgo"
	SignLibra       ZodiacSign = "libra"
	SignScorpio     ZodiacSign = "scorpio"
	SignSagittarius ZodiacSign = "sagittarius"
	SignCapricorn   ZodiacSign = "capricorn"
	SignAquarius    ZodiacSign = "aquarius"
	SignPisces      ZodiacSign = "pisces"
)

// AllZodiacSigns в порядке эклиптики, начиная с 0°
func AllZodiacSigns() []ZodiacSign {
	return []ZodiacSign{
		SignAries, SignTaurus, SignGemini, SignCancer, SignLeo, SignVirgo,
		SignLibra, SignScorpio, SignSagittarius, SignCapricorn, SignAquarius, SignPisces,
	}
}

func (s ZodiacSign) IsValid() bool {
	for _, sign := range AllZodiacSigns() {
		if s == sign {
			return true
		}
	}
	return false
}

// SignOf знак для долготы в [0,360)
func SignOf(degree float64) ZodiacSign {
	signs := AllZodiacSigns()
	idx := int(degree/30) % 12
	if idx < 0 {
		idx += 12
	}
	return signs[idx]
}

type AspectType string

const (
	AspectConjunction AspectType = "conjunction"
	AspectSextile     AspectType = "sextile"
	AspectSquare      AspectType = "square"
	AspectTrine       AspectType = "trine"
	AspectOpposition  AspectType = "opposition"
)

// AllAspectTypes канонический порядок проверки, первое совпадение выигрывает
func AllAspectTypes() []AspectType {
	return []AspectType{AspectConjunction, AspectSextile, AspectSquare, AspectTrine, AspectOpposition}
}

func (a AspectType) IsValid() bool {
	switch a {
	case AspectConjunction, AspectSextile, AspectSquare, AspectTrine, AspectOpposition:
		return true
	default:
		return false
	}
}

// Angle точный угол аспекта
func (a AspectType) Angle() float64 {
	switch a {
	case AspectSextile:
		return 60
	case AspectSquare:
		return 90
	case AspectTrine:
		return 120
	case AspectOpposition:
		return 180
	default:
		return 0
	}
}

type PlanetPosition struct {
	Planet       Planet     `json:"planet"`
	Sign         ZodiacSign `json:"sign"`
	Degree       float64    `json:"degree"`
	SignDegree   float64    `json:"sign_degree"`
	House        int        `json:"house"`
	IsRetrograde bool       `json:"is_retrograde"`
}

type AspectData struct {
	Planet1    Planet     `json:"planet1"`
	Planet2    Planet     `json:"planet2"`
	AspectType AspectType `json:"aspect_type"`
	Angle      float64    `json:"angle"`
	Orb        float64    `json:"orb"`
	IsApplying bool       `json:"is_applying"`
}

type HouseData struct {
	Ascendant float64     `json:"ascendant"`
	Midheaven float64     `json:"midheaven"`
	Cusps     [12]float64 `json:"cusps"`
}

// AstrologyData натальная карта западной астрологии
type AstrologyData struct {
	Sun        PlanetPosition   `json:"sun"`
	Moon       PlanetPosition   `json:"moon"`
	Ascendant  PlanetPosition   `json:"ascendant"`
	Planets    []PlanetPosition `json:"planets"`
	Aspects    []AspectData     `json:"aspects"`
	HouseCusps [12]float64      `json:"house_cusps"`
}

// Position ищет позицию тела, nil если тело пропущено
func (a *AstrologyData) Position(p Planet) *PlanetPosition {
	for i := range a.Planets {
		if a.Planets[i].Planet == p {
			return &a.Planets[i]
		}
	}
	return nil
}

type TransitEvent struct {
	TransitPlanet     Planet     `json:"transit_planet"`
	NatalPlanet       Planet     `json:"natal_planet"`
	AspectType        AspectType `json:"aspect_type"`
	Orb               float64    `json:"orb"`
	IsApplying        bool       `json:"is_applying"`
	InterpretationKey string     `json:"interpretation_key"`
}

type DailyTransit struct {
	Date            string           `json:"date"`
	Transits        []TransitEvent   `json:"transits"`
	MoonSign        ZodiacSign       `json:"moon_sign"`
	PlanetPositions []PlanetPosition `json:"planet_positions"`
	KeyAspects      []AspectData     `json:"key_aspects"`
}
