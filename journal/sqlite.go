package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	run_id     TEXT NOT NULL,
	step       INTEGER NOT NULL,
	ts         INTEGER NOT NULL,
	asset_code TEXT NOT NULL,
	price      REAL NOT NULL,
	units      REAL NOT NULL,
	cost       REAL NOT NULL,
	risk       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_run ON transactions(run_id, step);

CREATE TABLE IF NOT EXISTS equity (
	run_id          TEXT NOT NULL,
	step            INTEGER NOT NULL,
	ts              INTEGER NOT NULL,
	cash            REAL NOT NULL,
	equity          REAL NOT NULL,
	used_margin     REAL NOT NULL,
	borrowed_margin REAL NOT NULL,
	pnl             REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_equity_run ON equity(run_id, step);
`

// SQLite journals into a database file, one table per record kind.
// Multiple runs may share one file; rows are keyed by run id.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTransaction(tx Transaction) error {
	_, err := j.db.Exec(
		`INSERT INTO transactions (run_id, step, ts, asset_code, price, units, cost, risk)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.RunID, tx.Step, tx.Timestamp, tx.AssetCode, tx.Price, tx.Units, tx.Cost, tx.Risk)
	return err
}

func (j *SQLite) RecordEquity(snap EquitySnapshot) error {
	_, err := j.db.Exec(
		`INSERT INTO equity (run_id, step, ts, cash, equity, used_margin, borrowed_margin, pnl)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.RunID, snap.Step, snap.Timestamp, snap.Cash, snap.Equity,
		snap.UsedMargin, snap.BorrowedMargin, snap.PnL)
	return err
}

func (j *SQLite) Close() error { return j.db.Close() }

// Transactions reads back every transaction of a run in step order.
// Mostly useful for analysis tooling and tests.
func (j *SQLite) Transactions(runID string) ([]Transaction, error) {
	rows, err := j.db.Query(
		`SELECT run_id, step, ts, asset_code, price, units, cost, risk
		 FROM transactions WHERE run_id = ? ORDER BY step`, runID)
	if err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var tx Transaction
		if err := rows.Scan(&tx.RunID, &tx.Step, &tx.Timestamp, &tx.AssetCode,
			&tx.Price, &tx.Units, &tx.Cost, &tx.Risk); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// EquityCurve reads back a run's equity snapshots in step order.
func (j *SQLite) EquityCurve(runID string) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(
		`SELECT run_id, step, ts, cash, equity, used_margin, borrowed_margin, pnl
		 FROM equity WHERE run_id = ? ORDER BY step`, runID)
	if err != nil {
		return nil, fmt.Errorf("read equity curve: %w", err)
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var s EquitySnapshot
		if err := rows.Scan(&s.RunID, &s.Step, &s.Timestamp, &s.Cash, &s.Equity,
			&s.UsedMargin, &s.BorrowedMargin, &s.PnL); err != nil {
			return nil, fmt.Errorf("scan equity snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
