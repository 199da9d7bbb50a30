package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CSV journals into a pair of files next to the configured path:
// <path>_transactions.csv and <path>_equity.csv, each with a header
// row. The .csv extension on the configured path is optional.
type CSV struct {
	txFile *os.File
	eqFile *os.File
	tx     *csv.Writer
	eq     *csv.Writer
}

func NewCSV(path string) (*CSV, error) {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	if dir := filepath.Dir(stem); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}
	txFile, err := os.Create(stem + "_transactions.csv")
	if err != nil {
		return nil, fmt.Errorf("create transaction journal: %w", err)
	}
	eqFile, err := os.Create(stem + "_equity.csv")
	if err != nil {
		txFile.Close()
		return nil, fmt.Errorf("create equity journal: %w", err)
	}
	j := &CSV{
		txFile: txFile,
		eqFile: eqFile,
		tx:     csv.NewWriter(txFile),
		eq:     csv.NewWriter(eqFile),
	}
	if err := j.tx.Write([]string{"run_id", "step", "ts", "asset_code", "price", "units", "cost", "risk"}); err != nil {
		j.Close()
		return nil, err
	}
	if err := j.eq.Write([]string{"run_id", "step", "ts", "cash", "equity", "used_margin", "borrowed_margin", "pnl"}); err != nil {
		j.Close()
		return nil, err
	}
	return j, nil
}

func (j *CSV) RecordTransaction(tx Transaction) error {
	return j.tx.Write([]string{
		tx.RunID,
		strconv.FormatUint(tx.Step, 10),
		strconv.FormatUint(tx.Timestamp, 10),
		tx.AssetCode,
		formatFloat(tx.Price),
		formatFloat(tx.Units),
		formatFloat(tx.Cost),
		tx.Risk,
	})
}

func (j *CSV) RecordEquity(snap EquitySnapshot) error {
	return j.eq.Write([]string{
		snap.RunID,
		strconv.FormatUint(snap.Step, 10),
		strconv.FormatUint(snap.Timestamp, 10),
		formatFloat(snap.Cash),
		formatFloat(snap.Equity),
		formatFloat(snap.UsedMargin),
		formatFloat(snap.BorrowedMargin),
		formatFloat(snap.PnL),
	})
}

func (j *CSV) Close() error {
	j.tx.Flush()
	j.eq.Flush()
	err := j.tx.Error()
	if e := j.eq.Error(); err == nil {
		err = e
	}
	if e := j.txFile.Close(); err == nil {
		err = e
	}
	if e := j.eqFile.Close(); err == nil {
		err = e
	}
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
