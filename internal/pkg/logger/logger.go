package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const consoleTimeLayout = "15:04:05.000"

type Config struct {
	Encoding  string `envconfig:"ENCODING" default:"console"`
	Level     string `envconfig:"LEVEL" default:"info"`
	AddSource bool   `envconfig:"ADD_SOURCE" default:"false"`

	// Output задаётся кодом (CLI пишет логи в stderr команды); по умолчанию stdout для json, stderr для console
	Output io.Writer `ignored:"true"`
}

// New логгер сервиса с атрибутами app и engine_version; неверный конфиг - паника на старте
func New(app, engineVersion string, cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = &Config{}
	}

	encoding := cfg.Encoding
	if encoding == "" {
		encoding = "console"
	}
	levelName := cfg.Level
	if levelName == "" {
		levelName = "info"
	}

	level, err := ParseLevel(levelName)
	if err != nil {
		panic(fmt.Errorf("invalid logger config: %w", err))
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch encoding {
	case "json":
		handler = slog.NewJSONHandler(writerOr(cfg.Output, os.Stdout), opts)
	case "console":
		handler = NewConsoleHandler(writerOr(cfg.Output, os.Stderr), opts)
	default:
		panic(fmt.Errorf("invalid logger config: encoding %s is not supported", encoding))
	}

	return slog.New(handler).With(
		"app", app,
		"engine_version", engineVersion,
	)
}

// ParseLevel debug, info, warn (warning), error без учёта регистра
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("level %s is not supported", level)
	}
}

// NewConsoleHandler текстовый вывод для терминала: короткое время и file:line вместо полного пути
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	textOpts := &slog.HandlerOptions{}
	if opts != nil {
		*textOpts = *opts
	}
	textOpts.ReplaceAttr = consoleAttr
	return slog.NewTextHandler(w, textOpts)
}

func consoleAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		if t := a.Value.Time(); !t.IsZero() {
			return slog.String(slog.TimeKey, t.Format(consoleTimeLayout))
		}
	case slog.SourceKey:
		if src, ok := a.Value.Any().(*slog.Source); ok {
			return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		}
	}
	return a
}

func writerOr(w io.Writer, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
