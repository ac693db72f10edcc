package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/vitals-go/internal/app"
	"github.com/doeshing/vitals-go/internal/domain"
	"github.com/doeshing/vitals-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// ExitError asks main to exit with Code without printing anything further.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, app.Options{
		ConfigPath: opts.ConfigPath,
		Verbose:    opts.Verbose,
	})
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:           "vitals",
		Short:         "Vitals threshold checker",
		Long:          "vitals classifies temperature, pulse rate and SpO2 readings and reports localized status messages.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCheckCommand(container, opts.Verbose))
	root.AddCommand(commands.NewTranslateCommand(container))
	root.AddCommand(commands.NewCatalogCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}

func newCheckCommand(container *app.Container, verbose bool) *cobra.Command {
	var (
		readings domain.Readings
		language string
		policy   string
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Classify a set of vital readings",
		Example: "  vitals check --temperature 98.1 --pulse-rate 70 --spo2 98\n" +
			"  vitals check --temperature 94 --pulse-rate 70 --spo2 98 --language de",
		RunE: func(cmd *cobra.Command, args []string) error {
			if language != "" {
				container.Localizer.SetLanguage(domain.Language(language))
			}
			if policy != "" {
				p, err := domain.ParseEvalPolicy(policy)
				if err != nil {
					return err
				}
				container.Evaluator.Policy = p
			}

			out := cmd.OutOrStdout()
			container.Evaluator.Presenter.Sink = nil
			if !jsonOut {
				container.Evaluator.Presenter.Sink = NewWriterSink(out, IsTerminal(out))
			}

			eval, err := container.Evaluator.EvaluateAll(cmd.Context(), readings)
			if err != nil {
				return err
			}

			if jsonOut {
				if err := RenderEvaluationJSON(out, eval); err != nil {
					return err
				}
			} else {
				RenderEvaluation(out, eval, container.Localizer, verbose)
			}

			if path := container.Config.Metrics.Textfile; path != "" {
				if err := container.Metrics.WriteTextfile(path); err != nil {
					container.Logger.Warn("metrics textfile write failed", map[string]interface{}{
						"path":  path,
						"error": err.Error(),
					})
				}
			}

			if totals, err := container.Metrics.Totals(); err == nil {
				container.Logger.Debug("metrics", map[string]interface{}{
					"classifications": totals["vitals_classifications_total"],
					"evaluations":     totals["vitals_evaluations_total"],
				})
			}

			if !eval.AllOk {
				return &ExitError{Code: domain.ExitVitalsNotOk}
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&readings.Temperature, "temperature", 0, "Body temperature reading (°F)")
	cmd.Flags().Float64Var(&readings.PulseRate, "pulse-rate", 0, "Pulse rate reading (bpm)")
	cmd.Flags().Float64Var(&readings.Spo2, "spo2", 0, "Blood oxygen saturation reading (%)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Message language (e.g. en, de; default from config)")
	cmd.Flags().StringVar(&policy, "policy", "", "Evaluation policy: all|short_circuit (default from config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the evaluation as JSON")
	_ = cmd.MarkFlagRequired("temperature")
	_ = cmd.MarkFlagRequired("pulse-rate")
	_ = cmd.MarkFlagRequired("spo2")

	return cmd
}
