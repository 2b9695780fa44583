package journal

import (
	"database/sql"
	"fmt"
)

// GetRun returns one run summary by ID.
func (j *SQLiteJournal) GetRun(runID string) (Run, error) {
	row := j.db.QueryRow(`
		SELECT run_id, created, strategy, dataset, initial_capital, commission, slippage,
		       start_date, end_date, trades, wins, losses, final_capital, total_return, max_drawdown
		FROM runs
		WHERE run_id = ?`, runID)

	var r Run
	err := row.Scan(
		&r.RunID, &r.Created, &r.Strategy, &r.Dataset,
		&r.InitialCapital, &r.Commission, &r.Slippage,
		&r.Start, &r.End, &r.Trades, &r.Wins, &r.Losses,
		&r.FinalCapital, &r.TotalReturn, &r.MaxDrawdown,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Run{}, fmt.Errorf("run %q not found", runID)
		}
		return Run{}, err
	}
	return r, nil
}

// ListRuns returns run summaries, newest first.
func (j *SQLiteJournal) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.Query(`
		SELECT run_id, created, strategy, dataset, initial_capital, commission, slippage,
		       start_date, end_date, trades, wins, losses, final_capital, total_return, max_drawdown
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.RunID, &r.Created, &r.Strategy, &r.Dataset,
			&r.InitialCapital, &r.Commission, &r.Slippage,
			&r.Start, &r.End, &r.Trades, &r.Wins, &r.Losses,
			&r.FinalCapital, &r.TotalReturn, &r.MaxDrawdown,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// TradesByRun returns a run's trade ledger ordered by exit date.
func (j *SQLiteJournal) TradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, entry_date, entry_price, exit_date, exit_price, shares, pnl, pnl_pct, reason
		FROM trades
		WHERE run_id = ?
		ORDER BY exit_date ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		if err := rows.Scan(
			&t.RunID, &t.EntryDate, &t.EntryPrice, &t.ExitDate, &t.ExitPrice,
			&t.Shares, &t.PnL, &t.PnLPct, &t.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// EquityByRun returns a run's equity curve in bar order.
func (j *SQLiteJournal) EquityByRun(runID string) ([]EquityPoint, error) {
	rows, err := j.db.Query(`
		SELECT run_id, date, equity
		FROM equity
		WHERE run_id = ?
		ORDER BY date ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquityPoint
	for rows.Next() {
		var e EquityPoint
		if err := rows.Scan(&e.RunID, &e.Date, &e.Equity); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
