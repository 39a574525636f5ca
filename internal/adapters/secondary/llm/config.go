package llm

import "time"

type Config struct {
	BaseURL          string `envconfig:"BASE_URL" default:"https://api.anthropic.com"`
	ApiVersion       string `envconfig:"VERSION" default:"v1"`
	AnthropicVersion string `envconfig:"ANTHROPIC_VERSION" default:"2023-06-01"`
	ApiKey           string `envconfig:"API_KEY"`
	SkipSSL          string `envconfig:"SKIP_SSL"`
	Timeout          int    `envconfig:"TIMEOUT" default:"10"` // в секундах
}

func (c *Config) ShouldSkipSSL() bool {
	return c.SkipSSL == "true" || c.SkipSSL == "1" || c.SkipSSL == "True"
}

// Enabled без ключа шлифовка отключена и прогнозы отдаются на уровне шаблона
func (c *Config) Enabled() bool {
	return c != nil && c.ApiKey != ""
}

func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}
