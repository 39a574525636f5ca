package domain

import "fmt"

// Tag элемент закрытого словаря тегов, связывающего вычисления с каталогом шаблонов
type Tag string

const (
	TagFavorable Tag = "favorable"
	TagChallenge Tag = "challenge"
	TagFallback  Tag = "fallback"
)

// themeTags тематические теги каталога, движком не порождаются
var themeTags = []Tag{
	"abundance", "adaptability", "adaptation", "apology", "art", "autumn", "awakening", "awareness",
	"balance", "body", "body-listening", "bookkeeping", "boundary", "burnout", "career",
	"circulation", "collaboration", "communication", "connection", "consolidation", "courage",
	"creative", "cross-team", "curiosity", "daily", "digestion", "eating", "emotion", "empathy",
	"energy", "entrepreneurship", "exercise", "exploration", "expression", "failure", "family",
	"finance", "flow", "focus", "friendship", "general", "goal-setting", "gratitude", "grounding",
	"growth", "habit", "harmony", "harvest", "health", "heart", "hope", "hydration", "independence",
	"initiative", "insight", "interpersonal", "interview", "intimacy", "investing", "joy", "kidney",
	"leadership", "learning", "letting-go", "listening", "liver", "lung", "maintenance",
	"management", "mental-health", "mindfulness", "momentum", "motivation", "network",
	"new-beginning", "new-connection", "new-skill", "openness", "partner", "passion", "patience",
	"peak", "persistence", "perspective", "planning", "positive", "precision", "preparation",
	"project", "promotion", "quality", "reading", "reconciliation", "recovery", "refinement",
	"reflection", "reframe", "relationship", "release", "reliability", "renewal", "respiration",
	"rest", "review", "seed", "self-awareness", "self-care", "self-respect", "selfcare",
	"side-hustle", "sleep", "social", "social-anxiety", "solitude", "spending", "spring", "startup",
	"stillness", "strategy", "stress", "study", "summer", "teamwork", "temperance", "tension",
	"time-management", "transition", "trust", "visibility", "vision", "vitality", "warmth", "wealth",
	"winter", "wisdom", "workplace", "worth", "writing",
}

var knownTags = buildKnownTags()

func buildKnownTags() map[Tag]struct{} {
	tags := make(map[Tag]struct{})
	add := func(t Tag) { tags[t] = struct{}{} }

	for _, s := range AllZodiacSigns() {
		add(SignTag(s))
		add(MoonSignTag(s))
	}
	for _, p := range AllPlanets() {
		add(PlanetTag(p))
		add(RetrogradeTag(p))
	}
	for _, a := range AllAspectTypes() {
		add(AspectTag(a))
	}
	for _, e := range AllElements() {
		add(ElementTag(e))
	}
	for _, g := range AllTenGods() {
		add(TenGodTag(g))
	}
	for _, s := range AllStrengths() {
		add(StrengthTag(s))
	}
	add(TagFavorable)
	add(TagChallenge)
	add(TagFallback)
	for _, t := range themeTags {
		add(t)
	}
	return tags
}

func (t Tag) IsValid() bool {
	_, ok := knownTags[t]
	return ok
}

// AllTags весь словарь, порядок не гарантирован
func AllTags() []Tag {
	tags := make([]Tag, 0, len(knownTags))
	for t := range knownTags {
		tags = append(tags, t)
	}
	return tags
}

func SignTag(s ZodiacSign) Tag     { return Tag(s) }
func MoonSignTag(s ZodiacSign) Tag { return Tag(fmt.Sprintf("moon-%s", s)) }
func PlanetTag(p Planet) Tag       { return Tag(p) }
func RetrogradeTag(p Planet) Tag   { return Tag(fmt.Sprintf("%s-retrograde", p)) }
func AspectTag(a AspectType) Tag   { return Tag(a) }
func ElementTag(e Element) Tag     { return Tag(e) }
func TenGodTag(g TenGod) Tag       { return Tag(g) }
func StrengthTag(s Strength) Tag   { return Tag(fmt.Sprintf("daymaster-%s", s)) }

// TagStrings для сопоставления с каталогом
func TagStrings(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}
