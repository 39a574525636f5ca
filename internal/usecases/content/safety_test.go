package content

import (
	"testing"

	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSafetyFilter_Default(t *testing.T) {
	f := NewSafetyFilter(DefaultSafetyConfig())

	res := f.Check("最近壓力好大，真的有點不想活了")
	assert.True(t, res.Triggered)
	assert.Equal(t, "不想活", res.MatchedKeyword)
	assert.Equal(t, []domain.HelpResource{
		{Name: "衛生福利部安心專線", Phone: "1925"},
		{Name: "生命線", Phone: "1995"},
		{Name: "張老師", Phone: "1980"},
	}, res.Resources)

	clean := f.Check("今天適合整理書桌，也適合早點睡")
	assert.False(t, clean.Triggered)
	assert.Empty(t, clean.Resources)
}

func TestSafetyFilter_FirstKeywordWins(t *testing.T) {
	f := NewSafetyFilter(DefaultSafetyConfig())

	res := f.Check("跳樓 想死")
	assert.True(t, res.Triggered)
	assert.Equal(t, "想死", res.MatchedKeyword)
}

func TestSafetyFilter_NormalizesWidthAndCase(t *testing.T) {
	f := NewSafetyFilter(SafetyConfig{
		Keywords:  []string{"  Crisis "},
		Resources: []domain.HelpResource{{Name: "line", Phone: "000"}},
	})

	assert.True(t, f.Check("ＣＲＩＳＩＳ mode").Triggered)
	assert.True(t, f.Check("a crisis").Triggered)
	assert.False(t, f.Check("cri sis").Triggered)
}

func TestSafetyFilter_IgnoresBlankKeywords(t *testing.T) {
	f := NewSafetyFilter(SafetyConfig{Keywords: []string{"", "   "}})

	assert.False(t, f.Check("anything").Triggered)
}
