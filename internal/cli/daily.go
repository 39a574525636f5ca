package cli

import (
	"time"

	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// DailyCommand прогноз на дату без сохранения и шлифовки
func DailyCommand(appName string) *cobra.Command {
	var (
		birth birthFlags
		date  string
		name  string
	)

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Generate the daily fortune for a birth chart and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := birth.toDomain()
			if err != nil {
				return err
			}

			day := time.Now().UTC().Truncate(24 * time.Hour)
			if date != "" {
				day, err = time.Parse(dateLayout, date)
				if err != nil {
					return domain.NewValidationError(domain.CodeInvalidFormat, "date", "must be YYYY-MM-DD")
				}
			}

			log, err := cliLogger(cmd, appName)
			if err != nil {
				return err
			}

			svc, err := newEngineService(log)
			if err != nil {
				return err
			}

			fortune, err := svc.PreviewDaily(cmd.Context(), name, in, day)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), fortune)
		},
	}

	birth.register(cmd)
	cmd.Flags().StringVar(&date, "date", "", "Fortune date (YYYY-MM-DD), today in UTC by default")
	cmd.Flags().StringVar(&name, "name", "", "Name used in the {{userName}} template variable")

	return cmd
}
