package content

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/pkg/metrics"
)

const (
	PolishModel     = "claude-3-5-haiku-20241022"
	PolishMaxTokens = 300

	maxPolishedMessage = 150
	maxPolishedAction  = 80

	// USD за миллион токенов
	inputPricePerMillion  = 0.25
	outputPricePerMillion = 1.25
)

const polishSystemPrompt = `你是 OATH 的命理解說員，任務是將模板生成的每日運勢潤色成更自然、更溫暖的語言。

規則：
1. 保持正向：永遠不要用「壞」「糟」「不幸」等負面詞彙
2. 保持科學：用心理學/正向引導的語言，避免迷信或恐嚇
3. 保持簡潔：訊息不超過 150 字，行動建議不超過 80 字
4. 保持真實：不要誇大或做空泛的承諾
5. 保持個人化：讓使用者感覺這是「對我說的」而非群發訊息
6. 安全底線：如果內容涉及健康、法律、財務決策，加上「建議諮詢專業人士」

輸出格式（JSON）：
{
  "message": "潤色後的訊息",
  "action": "潤色後的行動建議"
}`

// оценка размера одного вызова в токенах
const (
	estimatedInputTokens  = 350
	estimatedOutputTokens = 200
)

func PolishSystemPrompt() string {
	return polishSystemPrompt
}

// PolishUserPrompt сообщение пользователя для LLM
func PolishUserPrompt(req domain.PolishRequest) string {
	var b strings.Builder
	b.WriteString("請潤色以下每日運勢內容：\n\n")
	fmt.Fprintf(&b, "太陽星座：%s\n", nameOr(signNames, req.SunSign, "未知"))
	fmt.Fprintf(&b, "今日五行：%s\n", nameOr(elementNames, req.DayElement, "未知"))
	fmt.Fprintf(&b, "語系：%s\n\n", stringOr(string(req.Locale), string(domain.LocaleZhTW)))
	fmt.Fprintf(&b, "原始訊息：\n%s\n\n", req.TemplateMessage)
	fmt.Fprintf(&b, "原始行動建議：\n%s\n\n", req.ActionSuggestion)
	b.WriteString("請用更自然溫暖的語言重寫，保持核心意思不變。")
	return b.String()
}

// EstimatedPolishCostUSD ожидаемая стоимость одного вызова
func EstimatedPolishCostUSD() float64 {
	return PolishCostUSD(estimatedInputTokens, estimatedOutputTokens)
}

// PolishCostUSD стоимость вызова по числу токенов
func PolishCostUSD(tokensIn, tokensOut int) float64 {
	return float64(tokensIn)*inputPricePerMillion/1e6 + float64(tokensOut)*outputPricePerMillion/1e6
}

// AcceptPolished проверяет ответ LLM перед выдачей: непустой, в пределах длины, без срабатывания фильтра
func (s *Service) AcceptPolished(resp *domain.PolishResponse) bool {
	if resp == nil {
		return false
	}
	msg := strings.TrimSpace(resp.PolishedMessage)
	action := strings.TrimSpace(resp.PolishedAction)
	if msg == "" || action == "" {
		return false
	}
	if utf8.RuneCountInString(msg) > maxPolishedMessage || utf8.RuneCountInString(action) > maxPolishedAction {
		s.log.Warn("polished text exceeds length limits",
			"message_len", utf8.RuneCountInString(msg),
			"action_len", utf8.RuneCountInString(action),
		)
		return false
	}
	if check := s.safety.Check(msg + "\n" + action); check.Triggered {
		metrics.SafetyTriggered.WithLabelValues("polish").Inc()
		s.log.Warn("safety filter triggered on polished text", "keyword", check.MatchedKeyword)
		return false
	}
	return true
}
