package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/vitals-go/internal/app"
	"github.com/doeshing/vitals-go/internal/domain"
)

// NewCatalogCommand creates the catalog command with its subcommands
func NewCatalogCommand(container *app.Container) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the message catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCatalogCoverage(cmd.OutOrStdout(), container)
		},
	}

	catalogCmd.AddCommand(
		newCatalogShowCommand(container),
		newCatalogSetCommand(container),
	)

	return catalogCmd
}

func newCatalogShowCommand(container *app.Container) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print every message key with its translation",
		RunE: func(cmd *cobra.Command, args []string) error {
			lang := container.Localizer.Language()
			if language != "" {
				lang = domain.Language(language)
			}
			out := cmd.OutOrStdout()
			for _, key := range container.Localizer.Catalog().Keys() {
				fmt.Fprintf(out, "%s => %s\n", key, container.Localizer.Translate(lang, key))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Language to show (default from config)")
	return cmd
}

func newCatalogSetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "set <language> <key> <text>",
		Short:   "Add or replace a translation in the config catalog",
		Example: `  vitals catalog set fr "Temperature critical!" "Température critique !"`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, container, func(cfg *domain.Config) error {
				return cfg.SetTranslation(domain.Language(args[0]), args[1], args[2])
			})
		},
	}
}

// showCatalogCoverage lists each language with its missing entry count
func showCatalogCoverage(out io.Writer, container *app.Container) error {
	catalog := container.Localizer.Catalog()
	total := len(catalog.Keys())
	for _, lang := range catalog.Languages() {
		missing := len(catalog.Missing(lang))
		fmt.Fprintf(out, "%s: %d/%d\n", lang, total-missing, total)
	}
	return nil
}
