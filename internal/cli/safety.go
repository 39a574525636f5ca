package cli

import (
	"github.com/sensa-ai-tech/OATH/internal/usecases/content"
	"github.com/spf13/cobra"
)

// SafetyCommand проверка текста фильтром кризисных ключевых слов
func SafetyCommand() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "safety",
		Short: "Check text against the crisis keyword filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := content.NewSafetyFilter(content.DefaultSafetyConfig())
			return writeJSON(cmd.OutOrStdout(), filter.Check(text))
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to check")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}
