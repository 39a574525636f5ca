package cli

import (
	"github.com/spf13/cobra"
)

// NatalCommand натальная карта в JSON
func NatalCommand(appName string) *cobra.Command {
	var birth birthFlags

	cmd := &cobra.Command{
		Use:   "natal",
		Short: "Compute a natal chart (Western astrology and Bazi) and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := birth.toDomain()
			if err != nil {
				return err
			}

			log, err := cliLogger(cmd, appName)
			if err != nil {
				return err
			}

			svc, err := newEngineService(log)
			if err != nil {
				return err
			}

			chart, err := svc.ComputeNatalChart(cmd.Context(), in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), chart)
		},
	}

	birth.register(cmd)
	return cmd
}
