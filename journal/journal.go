// Package journal persists what a simulation run did: every executed
// transaction and periodic equity snapshots, keyed by run id and step.
package journal

import (
	"github.com/rustyeddy/marketsim/market"
)

// Transaction is one executed trade.
type Transaction struct {
	RunID     string
	Step      uint64
	Timestamp uint64
	AssetCode string
	Price     float64
	Units     float64
	Cost      float64
	Risk      string
}

// EquitySnapshot is the book's state at one step.
type EquitySnapshot struct {
	RunID          string
	Step           uint64
	Timestamp      uint64
	Cash           float64
	Equity         float64
	UsedMargin     float64
	BorrowedMargin float64
	PnL            float64
}

// Journal is a sink for run records. Implementations are not safe for
// concurrent use; the stepping loop is single-threaded.
type Journal interface {
	RecordTransaction(tx Transaction) error
	RecordEquity(snap EquitySnapshot) error
	Close() error
}

// New builds a journal for the named backend. Backend "none" or ""
// returns a discarding journal.
func New(backend, path string) (Journal, error) {
	switch backend {
	case "", "none":
		return Nop{}, nil
	case "sqlite":
		return NewSQLite(path)
	case "csv":
		return NewCSV(path)
	default:
		return nil, market.Configf("unknown journal backend %q", backend)
	}
}

// Nop discards every record.
type Nop struct{}

func (Nop) RecordTransaction(Transaction) error { return nil }
func (Nop) RecordEquity(EquitySnapshot) error   { return nil }
func (Nop) Close() error                        { return nil }
