package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sensa-ai-tech/OATH/internal/app"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/pkg/logger"
	"github.com/sensa-ai-tech/OATH/internal/usecases/content"
	"github.com/sensa-ai-tech/OATH/internal/usecases/fortune"
	"github.com/spf13/cobra"
)

// RootCommand oath без подкоманды запускает сервис
func RootCommand(appName string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          appName,
		Short:        "Astrology and Bazi daily fortune service",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(logLevelFlag, "warn", "Log level for natal and daily: debug, info, warn or error")

	serveCmd := ServeCommand(appName)
	rootCmd.RunE = serveCmd.RunE

	rootCmd.AddCommand(
		serveCmd,
		NatalCommand(appName),
		DailyCommand(appName),
		SafetyCommand(),
	)

	return rootCmd
}

// birthFlags общие флаги данных рождения для natal и daily
type birthFlags struct {
	datetime  string
	latitude  float64
	longitude float64
	gender    string
	precision string
}

func (f *birthFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.datetime, "datetime", "", "Birth date and time in RFC 3339, e.g. 1990-05-15T08:00:00+08:00")
	cmd.Flags().Float64Var(&f.latitude, "lat", 0, "Birth latitude in degrees, north positive")
	cmd.Flags().Float64Var(&f.longitude, "lon", 0, "Birth longitude in degrees, east positive")
	cmd.Flags().StringVar(&f.gender, "gender", string(domain.GenderMale), "Gender for luck pillar direction: male or female")
	cmd.Flags().StringVar(&f.precision, "precision", string(domain.PrecisionExact), "Birth time precision: exact, approximate or unknown")
	_ = cmd.MarkFlagRequired("datetime")
}

func (f *birthFlags) toDomain() (domain.BirthInput, error) {
	dt, err := time.Parse(time.RFC3339, f.datetime)
	if err != nil {
		return domain.BirthInput{}, domain.NewValidationError(domain.CodeInvalidFormat, "datetime", "must be RFC 3339")
	}
	in := domain.BirthInput{
		DateTime:      dt,
		Latitude:      f.latitude,
		Longitude:     f.longitude,
		Gender:        domain.Gender(f.gender),
		TimePrecision: domain.TimePrecision(f.precision),
	}
	return in, in.Validate()
}

const logLevelFlag = "log-level"

// cliLogger пишет в stderr команды, stdout остаётся под JSON
func cliLogger(cmd *cobra.Command, appName string) (*slog.Logger, error) {
	level, err := cmd.Flags().GetString(logLevelFlag)
	if err != nil {
		level = "warn"
	}
	if _, err := logger.ParseLevel(level); err != nil {
		return nil, domain.NewValidationError(domain.CodeInvalidFormat, logLevelFlag, err.Error())
	}
	return logger.New(appName, domain.EngineVersion, &logger.Config{
		Encoding: "console",
		Level:    level,
		Output:   cmd.ErrOrStderr(),
	}), nil
}

// newEngineService сервис прогнозов без хранилища, кэша и внешних вызовов
func newEngineService(log *slog.Logger) (*fortune.Service, error) {
	contentSvc, err := content.NewDefault(log)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	return fortune.New(nil, nil, nil, app.NewEngines(contentSvc, log), nil, nil, nil, nil, log), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
