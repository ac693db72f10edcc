package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/vitals-go/internal/app"
	"github.com/doeshing/vitals-go/internal/domain"
)

// NewTranslateCommand looks up a message key in the catalog.
func NewTranslateCommand(container *app.Container) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:     "translate <key>",
		Short:   "Translate a message key",
		Example: `  vitals translate "Temperature critical!" --language de`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.Join(args, " ")
			lang := container.Localizer.Language()
			if language != "" {
				lang = domain.Language(language)
			}
			fmt.Fprintln(cmd.OutOrStdout(), container.Localizer.Translate(lang, key))
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Target language (default from config)")
	return cmd
}
