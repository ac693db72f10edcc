package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/vitals-go/internal/app"
	"github.com/doeshing/vitals-go/internal/domain"
	"github.com/doeshing/vitals-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/vitals-go/internal/ports"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect evaluation history",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
		newHistoryRetainCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var (
		limit  int
		status string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent evaluations",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := domain.VitalStatus(status)
			switch filter {
			case "", domain.StatusOk, domain.StatusWarning, domain.StatusCritical:
			default:
				return fmt.Errorf("unknown status %q (want ok, warning or critical)", status)
			}
			return listHistoryEntries(cmd.OutOrStdout(), container, limit, filter)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	cmd.Flags().StringVar(&status, "status", "", "Only show evaluations where some vital had this status")
	return cmd
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded evaluations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := helpers.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Confirm("Delete all recorded evaluations.")
				if err != nil || !ok {
					return err
				}
			}
			return clearHistory(container)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportHistory(container, args[0])
		},
	}
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show all-ok rate and per-vital status distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistoryStats(cmd.OutOrStdout(), container, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print statistics as JSON")
	return cmd
}

// newHistoryRetainCommand creates the 'history retain' subcommand
func newHistoryRetainCommand(container *app.Container) *cobra.Command {
	var retainDays int

	cmd := &cobra.Command{
		Use:   "retain",
		Short: "Prune history older than N days and update retention policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if retainDays <= 0 {
				return errors.New(ErrInvalidRetainDays)
			}
			return updateHistoryRetention(cmd.Context(), cmd.OutOrStdout(), container, retainDays)
		},
	}

	cmd.Flags().IntVar(&retainDays, "days", domain.DefaultHistoryRetainDays, "Days to retain history")
	return cmd
}

func historyStore(container *app.Container) (ports.HistoryRepository, error) {
	if container.HistoryStore == nil {
		return nil, errors.New(ErrHistoryStoreUnavailable)
	}
	return container.HistoryStore, nil
}

// listHistoryEntries lists recent evaluations, newest first
func listHistoryEntries(out io.Writer, container *app.Container, limit int, status domain.VitalStatus) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	records, err := store.Records(limit, status)
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	for _, rec := range records {
		fmt.Fprintf(out, "%s (%s) | %s | %s | %s\n",
			rec.Timestamp.Format(domain.TimestampFormat),
			humanize.Time(rec.Timestamp),
			formatReadings(rec.Readings),
			formatStatuses(rec.Statuses),
			rec.Language)
	}

	return nil
}

// clearHistory removes every recorded evaluation
func clearHistory(container *app.Container) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	return nil
}

// exportHistory exports history to a JSONL file
func exportHistory(container *app.Container, path string) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	if err := store.ExportJSON(path); err != nil {
		return fmt.Errorf("failed to export history to %s: %w", path, err)
	}

	return nil
}

type historyStatistics struct {
	Entries  int                      `json:"entries"`
	OkRate   float64                  `json:"ok_rate"`
	Vitals   []helpers.VitalStatistic `json:"vitals"`
	Language []helpers.LanguageCount  `json:"languages"`
}

// showHistoryStats displays the all-ok rate and status distribution
func showHistoryStats(out io.Writer, container *app.Container, jsonOut bool) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	records, err := store.Records(domain.MaxHistoryAnalysisRecords, "")
	if err != nil {
		return fmt.Errorf("failed to retrieve history for analysis: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	stats := historyStatistics{
		Entries:  len(records),
		OkRate:   helpers.CalculateOkRate(records),
		Vitals:   helpers.CalculateVitalStatistics(records),
		Language: helpers.LanguageUsage(records),
	}
	if jsonOut {
		return writeJSON(out, stats)
	}

	fmt.Fprintf(out, "Entries analyzed: %d\nAll ok: %.1f%%\n", stats.Entries, stats.OkRate)

	fmt.Fprintln(out, "Status distribution:")
	for _, v := range stats.Vitals {
		fmt.Fprintf(out, "  %s: ok=%d warning=%d critical=%d skipped=%d\n",
			v.Kind, v.Ok, v.Warning, v.Critical, v.Skipped)
	}

	fmt.Fprintln(out, "Languages:")
	for _, l := range stats.Language {
		fmt.Fprintf(out, "  %s (%d)\n", l.Language, l.Count)
	}

	return nil
}

// updateHistoryRetention prunes old history and updates retention policy
func updateHistoryRetention(ctx context.Context, out io.Writer, container *app.Container, days int) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	if err := store.PruneOlderThan(days); err != nil {
		return fmt.Errorf("failed to prune old history: %w", err)
	}

	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.SetHistoryRetention(days); err != nil {
		return err
	}

	if err := helpers.SaveConfigWithValidation(container, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "Retained last %d days of history.\n", days)
	return nil
}

func formatReadings(r domain.Readings) string {
	return fmt.Sprintf("T=%g PR=%g SpO2=%g", r.Temperature, r.PulseRate, r.Spo2)
}

func formatStatuses(statuses map[domain.VitalKind]domain.VitalStatus) string {
	parts := make([]string, 0, len(domain.EvaluationOrder))
	for _, kind := range domain.EvaluationOrder {
		status, ok := statuses[kind]
		if !ok {
			status = "-"
		}
		parts = append(parts, fmt.Sprintf("%s=%s", kind, status))
	}
	return strings.Join(parts, " ")
}
