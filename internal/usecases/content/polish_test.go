package content

import (
	"strings"
	"testing"

	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPolishUserPrompt(t *testing.T) {
	prompt := PolishUserPrompt(domain.PolishRequest{
		TemplateMessage:  "原訊息",
		ActionSuggestion: "原建議",
		SunSign:          domain.SignLeo,
		DayElement:       domain.ElementWater,
	})

	assert.True(t, strings.HasPrefix(prompt, "請潤色以下每日運勢內容：\n\n"))
	assert.Contains(t, prompt, "太陽星座：獅子座\n")
	assert.Contains(t, prompt, "今日五行：水\n")
	assert.Contains(t, prompt, "語系：zh-TW\n\n")
	assert.Contains(t, prompt, "原始訊息：\n原訊息\n\n")
	assert.Contains(t, prompt, "原始行動建議：\n原建議\n\n")
	assert.True(t, strings.HasSuffix(prompt, "保持核心意思不變。"))
}

func TestPolishSystemPrompt(t *testing.T) {
	assert.Contains(t, PolishSystemPrompt(), `"message"`)
	assert.Contains(t, PolishSystemPrompt(), `"action"`)
}

func TestPolishCost(t *testing.T) {
	assert.InDelta(t, 0.25, PolishCostUSD(1_000_000, 0), 1e-12)
	assert.InDelta(t, 1.25, PolishCostUSD(0, 1_000_000), 1e-12)
	assert.InDelta(t, 0.0003375, EstimatedPolishCostUSD(), 1e-12)
}

func TestAcceptPolished(t *testing.T) {
	svc := newTestService(t, tpl("fb", domain.TagFallback))

	ok := &domain.PolishResponse{PolishedMessage: "今天很好", PolishedAction: "出門散步"}
	assert.True(t, svc.AcceptPolished(ok))

	assert.False(t, svc.AcceptPolished(nil))
	assert.False(t, svc.AcceptPolished(&domain.PolishResponse{PolishedMessage: "  ", PolishedAction: "x"}))
	assert.False(t, svc.AcceptPolished(&domain.PolishResponse{
		PolishedMessage: strings.Repeat("好", maxPolishedMessage+1),
		PolishedAction:  "x",
	}))
	assert.False(t, svc.AcceptPolished(&domain.PolishResponse{
		PolishedMessage: "今天很好",
		PolishedAction:  strings.Repeat("走", maxPolishedAction+1),
	}))
	assert.False(t, svc.AcceptPolished(&domain.PolishResponse{PolishedMessage: "好想死", PolishedAction: "x"}))
}
