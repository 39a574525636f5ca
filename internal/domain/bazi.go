package domain

// Stem небесный ствол (天干)
type Stem string

const (
	StemJia  Stem = "jia"
	StemYi   Stem = "yi"
	StemBing Stem = "bing"
	StemDing Stem = "ding"
	StemWu   Stem = "wu"
	StemJi   Stem = "ji"
	StemGeng Stem = "geng"
	StemXin  Stem = "xin"
	StemRen  Stem = "ren"
	StemGui  Stem = "gui"
)

// AllStems в порядке шестидесятеричного цикла
func AllStems() []Stem {
	return []Stem{StemJia, StemYi, StemBing, StemDing, StemWu, StemJi, StemGeng, StemXin, StemRen, StemGui}
}

func (s Stem) IsValid() bool {
	return s.Index() >= 0
}

// Index позиция в цикле, -1 для неизвестного ствола
func (s Stem) Index() int {
	for i, stem := range AllStems() {
		if s == stem {
			return i
		}
	}
	return -1
}

// IsYang чётные позиции цикла - ян
func (s Stem) IsYang() bool {
	idx := s.Index()
	return idx >= 0 && idx%2 == 0
}

// Element первостихия ствола: пары по порядку дерево, огонь, земля, металл, вода
func (s Stem) Element() Element {
	idx := s.Index()
	if idx < 0 {
		return ""
	}
	return AllElements()[idx/2]
}

// Branch земная ветвь (地支)
type Branch string

const (
	BranchZi   Branch = "zi"
	BranchChou Branch = "chou"
	BranchYin  Branch = "yin"
	BranchMao  Branch = "mao"
	BranchChen Branch = "chen"
	BranchSi   Branch = "si"
	BranchWu   Branch = "wu"
	BranchWei  Branch = "wei"
	BranchShen Branch = "shen"
	BranchYou  Branch = "you"
	BranchXu   Branch = "xu"
	BranchHai  Branch = "hai"
)

func AllBranches() []Branch {
	return []Branch{
		BranchZi, BranchChou, BranchYin, BranchMao, BranchChen, BranchSi,
		BranchWu, BranchWei, BranchShen, BranchYou, BranchXu, BranchHai,
	}
}

func (b Branch) IsValid() bool {
	return b.Index() >= 0
}

func (b Branch) Index() int {
	for i, branch := range AllBranches() {
		if b == branch {
			return i
		}
	}
	return -1
}

// Element первостихия (五行)
type Element string

const (
	ElementWood  Element = "wood"
	ElementFire  Element = "fire"
	ElementEarth Element = "earth"
	ElementMetal Element = "metal"
	ElementWater Element = "water"
)

// AllElements в порядке порождения: каждый следующий рождается предыдущим
func AllElements() []Element {
	return []Element{ElementWood, ElementFire, ElementEarth, ElementMetal, ElementWater}
}

func (e Element) IsValid() bool {
	switch e {
	case ElementWood, ElementFire, ElementEarth, ElementMetal, ElementWater:
		return true
	default:
		return false
	}
}

func (e Element) index() int {
	for i, el := range AllElements() {
		if e == el {
			return i
		}
	}
	return -1
}

// Generates элемент, который порождается этим (木生火)
func (e Element) Generates() Element {
	return AllElements()[(e.index()+1)%5]
}

// GeneratedBy элемент, порождающий этот
func (e Element) GeneratedBy() Element {
	return AllElements()[(e.index()+4)%5]
}

// Overcomes элемент, который подавляется этим (木克土)
func (e Element) Overcomes() Element {
	return AllElements()[(e.index()+2)%5]
}

// OvercomeBy элемент, подавляющий этот
func (e Element) OvercomeBy() Element {
	return AllElements()[(e.index()+3)%5]
}

// TenGod отношение к господину дня (十神)
type TenGod string

const (
	TenGodBiJian    TenGod = "bi_jian"
	TenGodJieCai    TenGod = "jie_cai"
	TenGodShiShen   TenGod = "shi_shen"
	TenGodShangGuan TenGod = "shang_guan"
	TenGodZhengCai  TenGod = "zheng_cai"
	TenGodPianCai   TenGod = "pian_cai"
	TenGodZhengGuan TenGod = "zheng_guan"
	TenGodQiSha     TenGod = "qi_sha"
	TenGodZhengYin  TenGod = "zheng_yin"
	TenGodPianYin   TenGod = "pian_yin"
)

func AllTenGods() []TenGod {
	return []TenGod{
		TenGodBiJian, TenGodJieCai, TenGodShiShen, TenGodShangGuan, TenGodZhengCai,
		TenGodPianCai, TenGodZhengGuan, TenGodQiSha, TenGodZhengYin, TenGodPianYin,
	}
}

func (t TenGod) IsValid() bool {
	for _, god := range AllTenGods() {
		if t == god {
			return true
		}
	}
	return false
}

type Strength string

const (
	StrengthStrong   Strength = "strong"
	StrengthModerate Strength = "moderate"
	StrengthWeak     Strength = "weak"
)

func AllStrengths() []Strength {
	return []Strength{StrengthStrong, StrengthModerate, StrengthWeak}
}

func (s Strength) IsValid() bool {
	switch s {
	case StrengthStrong, StrengthModerate, StrengthWeak:
		return true
	default:
		return false
	}
}

type Pillar struct {
	Stem          Stem    `json:"heavenly_stem"`
	Branch        Branch  `json:"earthly_branch"`
	StemElement   Element `json:"stem_element"`
	BranchElement Element `json:"branch_element"`
	TenGod        *TenGod `json:"ten_god,omitempty"`
	HiddenStems   []Stem  `json:"hidden_stems"`
}

type LuckPillar struct {
	Stem     Stem   `json:"heavenly_stem"`
	Branch   Branch `json:"earthly_branch"`
	StartAge int    `json:"start_age"`
	EndAge   int    `json:"end_age"`
}

type DayMasterAnalysis struct {
	DayMaster           Stem      `json:"day_master"`
	Element             Element   `json:"element"`
	Strength            Strength  `json:"strength"`
	FavorableElements   []Element `json:"favorable_elements"`
	UnfavorableElements []Element `json:"unfavorable_elements"`
}

// IsFavorable входит ли элемент в благоприятные
func (d DayMasterAnalysis) IsFavorable(e Element) bool {
	for _, el := range d.FavorableElements {
		if el == e {
			return true
		}
	}
	return false
}

func (d DayMasterAnalysis) IsUnfavorable(e Element) bool {
	for _, el := range d.UnfavorableElements {
		if el == e {
			return true
		}
	}
	return false
}

// BaziData четыре столпа; HourPillar nil при неизвестном времени рождения
type BaziData struct {
	YearPillar        Pillar            `json:"year_pillar"`
	MonthPillar       Pillar            `json:"month_pillar"`
	DayPillar         Pillar            `json:"day_pillar"`
	HourPillar        *Pillar           `json:"hour_pillar"`
	LuckPillars       []LuckPillar      `json:"luck_pillars"`
	DayMasterAnalysis DayMasterAnalysis `json:"day_master_analysis"`
	UsedTrueSolarTime bool              `json:"used_true_solar_time"`
	TimePrecision     TimePrecision     `json:"time_precision"`
}

type DailyBaziAnalysis struct {
	Date              string  `json:"date"`
	DayStem           Stem    `json:"day_stem"`
	DayBranch         Branch  `json:"day_branch"`
	DayElement        Element `json:"day_element"`
	DayRelation       TenGod  `json:"day_relation"`
	InterpretationKey string  `json:"interpretation_key"`
}
