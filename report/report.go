// Package report renders backtest results as plain-text tables.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/metrics"
)

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func ratio(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.4f", v)
}

// WriteSummary renders a single run: a Metric/Value table grouped into
// profitability, risk, risk-adjusted and trade sections.
func WriteSummary(w io.Writer, res *backtest.Result, rep metrics.Report, initialCapital float64) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Metric", "Value"})

	t.AppendRow(table.Row{"Strategy", res.StrategyName})
	t.AppendRow(table.Row{"Starting capital", money(initialCapital)})
	t.AppendRow(table.Row{"Final capital", money(res.FinalCapital)})
	t.AppendRow(table.Row{"Buy & hold final", money(res.BuyHoldFinal)})
	t.AppendSeparator()

	t.AppendRow(table.Row{"Total return", percent(rep[metrics.KeyTotalReturn])})
	t.AppendRow(table.Row{"CAGR", percent(rep[metrics.KeyCAGR])})
	t.AppendSeparator()

	t.AppendRow(table.Row{"Max drawdown", percent(rep[metrics.KeyMaxDrawdown])})
	t.AppendRow(table.Row{"Max drawdown duration", fmt.Sprintf("%.0f bars", rep[metrics.KeyMaxDDDuration])})
	t.AppendRow(table.Row{"Annualized volatility", percent(rep[metrics.KeyVolatility])})
	t.AppendSeparator()

	t.AppendRow(table.Row{"Sharpe ratio", ratio(rep[metrics.KeySharpeRatio])})
	t.AppendRow(table.Row{"Sortino ratio", ratio(rep[metrics.KeySortinoRatio])})
	t.AppendRow(table.Row{"Calmar ratio", ratio(rep[metrics.KeyCalmarRatio])})

	if n, ok := rep[metrics.KeyTotalTrades]; ok {
		t.AppendSeparator()
		t.AppendRow(table.Row{"Total trades", fmt.Sprintf("%.0f", n)})
		t.AppendRow(table.Row{"Win rate", percent(rep[metrics.KeyWinRate])})
		t.AppendRow(table.Row{"Profit factor", ratio(rep[metrics.KeyProfitFactor])})
		t.AppendRow(table.Row{"Avg win", money(rep[metrics.KeyAvgWin])})
		t.AppendRow(table.Row{"Avg loss", money(rep[metrics.KeyAvgLoss])})
		t.AppendRow(table.Row{"Avg trade duration", fmt.Sprintf("%.1f days", rep[metrics.KeyAvgTradeDays])})
	}

	t.Render()
}

// WriteTrades renders the trade ledger in execution order.
func WriteTrades(w io.Writer, trades []backtest.Trade) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Entry", "Entry Price", "Exit", "Exit Price", "Shares", "PnL", "PnL %", "Reason"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Entry Price", Align: text.AlignRight},
		{Name: "Exit Price", Align: text.AlignRight},
		{Name: "Shares", Align: text.AlignRight},
		{Name: "PnL", Align: text.AlignRight},
		{Name: "PnL %", Align: text.AlignRight},
	})

	for i, tr := range trades {
		t.AppendRow(table.Row{
			i + 1,
			tr.EntryDate.Format("2006-01-02"),
			money(tr.EntryPrice),
			tr.ExitDate.Format("2006-01-02"),
			money(tr.ExitPrice),
			tr.Shares,
			money(tr.PnL),
			percent(tr.PnLPct),
			tr.Reason,
		})
	}

	t.Render()
}

// WriteComparison renders one column per strategy, preserving the run order.
func WriteComparison(w io.Writer, cmp *backtest.Comparison) {
	rows := []struct {
		label  string
		key    string
		format func(float64) string
	}{
		{"Total return", metrics.KeyTotalReturn, percent},
		{"CAGR", metrics.KeyCAGR, percent},
		{"Final equity", metrics.KeyFinalEquity, money},
		{"Max drawdown", metrics.KeyMaxDrawdown, percent},
		{"Volatility", metrics.KeyVolatility, percent},
		{"Sharpe ratio", metrics.KeySharpeRatio, ratio},
		{"Sortino ratio", metrics.KeySortinoRatio, ratio},
		{"Calmar ratio", metrics.KeyCalmarRatio, ratio},
		{"Total trades", metrics.KeyTotalTrades, func(v float64) string { return fmt.Sprintf("%.0f", v) }},
		{"Win rate", metrics.KeyWinRate, percent},
		{"Profit factor", metrics.KeyProfitFactor, ratio},
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{"Metric"}
	for _, name := range cmp.Names {
		header = append(header, name)
	}
	t.AppendHeader(header)

	for _, r := range rows {
		row := table.Row{r.label}
		present := false
		for _, name := range cmp.Names {
			v, ok := cmp.Reports[name][r.key]
			if !ok {
				row = append(row, "-")
				continue
			}
			present = true
			row = append(row, r.format(v))
		}
		if present {
			t.AppendRow(row)
		}
	}

	t.Render()
}
