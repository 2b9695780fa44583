package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query saved backtest runs",
	Long: `Query and display saved runs from the SQLite journal.

Subcommands:
  list   - List recent runs
  show   - Show one run with its trades

Examples:
  backtester journal list
  backtester journal show <run-id>`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run with its trades",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var (
	journalDBPath string
	journalLimit  int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./backtester.sqlite", "path to SQLite journal DB")
	journalListCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "maximum number of runs to list")
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns(journalLimit)
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Run ID", "Created", "Strategy", "Dataset", "Trades", "Return", "Max DD"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.RunID,
			r.Created.Format("2006-01-02 15:04"),
			r.Strategy,
			r.Dataset,
			r.Trades,
			fmt.Sprintf("%.2f%%", r.TotalReturn*100),
			fmt.Sprintf("%.2f%%", r.MaxDrawdown*100),
		})
	}
	t.Render()
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	run, err := j.GetRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Run:      %s\n", run.RunID)
	fmt.Printf("Created:  %s\n", run.Created.Format("2006-01-02 15:04:05"))
	fmt.Printf("Strategy: %s\n", run.Strategy)
	fmt.Printf("Dataset:  %s (%s to %s)\n", run.Dataset,
		run.Start.Format("2006-01-02"), run.End.Format("2006-01-02"))
	fmt.Printf("Capital:  %.2f -> %.2f (%.2f%%)\n",
		run.InitialCapital, run.FinalCapital, run.TotalReturn*100)
	fmt.Printf("Trades:   %d (%d wins, %d losses)\n", run.Trades, run.Wins, run.Losses)
	fmt.Printf("Max DD:   %.2f%%\n\n", run.MaxDrawdown*100)

	trades, err := j.TradesByRun(run.RunID)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Entry", "Entry Price", "Exit", "Exit Price", "Shares", "PnL", "PnL %", "Reason"})
	for _, tr := range trades {
		t.AppendRow(table.Row{
			tr.EntryDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", tr.EntryPrice),
			tr.ExitDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", tr.ExitPrice),
			tr.Shares,
			fmt.Sprintf("%.2f", tr.PnL),
			fmt.Sprintf("%.2f%%", tr.PnLPct*100),
			tr.Reason,
		})
	}
	t.Render()
	return nil
}
