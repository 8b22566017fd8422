package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/minebot/internal/app"
	"github.com/doeshing/minebot/internal/domain"
	"github.com/doeshing/minebot/internal/infrastructure/cli/helpers"
	"github.com/doeshing/minebot/internal/ports"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded predictions",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryLastCommand(container),
		newHistoryStatsCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
	)
	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent predictions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	return cmd
}

func newHistoryLastCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Show the latest prediction with its grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showLastPrediction(cmd.OutOrStdout(), container)
		},
	}
}

func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show prediction counts and mine count distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistoryStats(cmd.OutOrStdout(), container)
		},
	}
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded predictions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryCleared)
			return nil
		},
	}
}

func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			if err := store.ExportJSON(args[0]); err != nil {
				return fmt.Errorf("failed to export history to %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported history to %s\n", args[0])
			return nil
		},
	}
}

func historyStore(container *app.Container) (ports.HistoryRepository, error) {
	if container.HistoryStore == nil {
		return nil, errors.New(ErrHistoryStoreUnavailable)
	}
	return container.HistoryStore, nil
}

func listHistoryEntries(out io.Writer, container *app.Container, limit int) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}
	records, err := store.Records(limit)
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	now := container.Clock.Now()
	for _, rec := range records {
		fmt.Fprintf(out, "%s | %s | mines=%d | safe=%v | seed=%q\n",
			rec.CreatedAt.Format(domain.TimestampFormat),
			humanize.RelTime(rec.CreatedAt, now, "ago", "from now"),
			rec.MineCount,
			[]int(rec.SafePositions),
			rec.Seed)
	}
	return nil
}

func showLastPrediction(out io.Writer, container *app.Container) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}
	rec, ok, err := store.Last()
	if err != nil {
		return fmt.Errorf("failed to read latest prediction: %w", err)
	}
	if !ok {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}
	echo, err := rec.EchoText()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s | mines=%d | chat=%d | seed=%q\n",
		rec.CreatedAt.Format(domain.TimestampFormat), rec.MineCount, rec.ChatID, rec.Seed)
	fmt.Fprintln(out, echo)
	fmt.Fprint(out, domain.PatternPrefix)
	fmt.Fprintln(out, rec.Grid().Format(container.Config.Display))
	return nil
}

func showHistoryStats(out io.Writer, container *app.Container) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}
	total, err := store.Len()
	if err != nil {
		return fmt.Errorf("failed to count history: %w", err)
	}
	if total == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}
	records, err := store.Records(domain.MaxHistoryAnalysisRecords)
	if err != nil {
		return fmt.Errorf("failed to retrieve history for analysis: %w", err)
	}

	stats := helpers.AnalyzeHistory(records)
	fmt.Fprintf(out, "Backend: %s\n", store.Path())
	fmt.Fprintf(out, "Predictions recorded: %s\n", humanize.Comma(int64(total)))
	fmt.Fprintf(out, "Entries analyzed: %s\n", humanize.Comma(int64(stats.Total)))
	fmt.Fprintf(out, "Distinct chats: %d\n", stats.DistinctChats)
	fmt.Fprintf(out, "Average safe cells: %.2f\n", stats.AverageSafeCells())
	fmt.Fprintln(out, "Top mine counts:")
	for _, stat := range helpers.CalculateTopMineCounts(stats.Frequency, 5) {
		fmt.Fprintf(out, "  %d mines (%d)\n", stat.MineCount, stat.Count)
	}
	return nil
}
