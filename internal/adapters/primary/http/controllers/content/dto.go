package contentController

import "github.com/sensa-ai-tech/OATH/internal/domain"

type MatchTemplatesReq struct {
	Tags  []string `json:"tags"`
	Limit int      `json:"limit"`
}

type MatchTemplatesResp struct {
	Templates []domain.FortuneTemplate `json:"templates"`
}

type SafetyCheckReq struct {
	Text string `json:"text"`
}
