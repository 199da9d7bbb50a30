// Package replay implements file-backed market-data sources. The
// persisted container is a SQLite database: one table holding a
// monotonically increasing integer timestamp column (indexed) plus one
// REAL column per price or feature series. Sources read a configured
// [startTime, endTime) window through a bounded in-memory cache.
package replay

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/marketsim/market"
)

// Store is a read handle on one time-series table.
type Store struct {
	db    *sql.DB
	table string
	tsCol string
}

// Row is one observation: a timestamp plus the requested column values.
type Row struct {
	TS     uint64
	Values []float64
}

func OpenStore(path, table, tsCol string) (*Store, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	if err := checkIdent(tsCol); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s := &Store{db: db, table: table, tsCol: tsCol}
	// fail construction on a missing table rather than on first read
	var n int
	row := db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s LIMIT 1`, table))
	if err := row.Scan(&n); err != nil {
		db.Close()
		return nil, market.Configf("store table %q not readable: %v", table, err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Count reports how many rows fall inside [from, to).
func (s *Store) Count(from, to uint64) (int, error) {
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s >= ? AND %s < ?`,
		s.table, s.tsCol, s.tsCol)
	var n int
	if err := s.db.QueryRow(q, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("count window: %w", err)
	}
	return n, nil
}

// Bounds reports the smallest and largest timestamp in the table.
func (s *Store) Bounds() (min, max uint64, err error) {
	q := fmt.Sprintf(`SELECT MIN(%s), MAX(%s) FROM %s`, s.tsCol, s.tsCol, s.table)
	if err = s.db.QueryRow(q).Scan(&min, &max); err != nil {
		return 0, 0, fmt.Errorf("store bounds: %w", err)
	}
	return min, max, nil
}

// ReadWindow returns up to limit rows with timestamp in [from, to), in
// timestamp order.
func (s *Store) ReadWindow(cols []string, from, to uint64, limit int) ([]Row, error) {
	for _, c := range cols {
		if err := checkIdent(c); err != nil {
			return nil, err
		}
	}
	q := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s >= ? AND %s < ? ORDER BY %s LIMIT ?`,
		s.tsCol, strings.Join(cols, ", "), s.table, s.tsCol, s.tsCol, s.tsCol)
	rows, err := s.db.Query(q, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("read window: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		r := Row{Values: make([]float64, len(cols))}
		dest := make([]any, 0, len(cols)+1)
		dest = append(dest, &r.TS)
		for i := range r.Values {
			dest = append(dest, &r.Values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Writer creates and populates a store table. Used by data-import
// tooling and tests.
type Writer struct {
	db    *sql.DB
	table string
	tsCol string
	cols  []string
}

func CreateStore(path, table, tsCol string, cols []string) (*Writer, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	if err := checkIdent(tsCol); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, market.Configf("store needs at least one value column")
	}
	for _, c := range cols {
		if err := checkIdent(c); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	defs := make([]string, 0, len(cols)+1)
	defs = append(defs, tsCol+" INTEGER PRIMARY KEY")
	for _, c := range cols {
		defs = append(defs, c+" REAL NOT NULL")
	}
	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s);
CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s(%s);`,
		table, strings.Join(defs, ", "), table, tsCol, table, tsCol)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create store schema: %w", err)
	}
	return &Writer{db: db, table: table, tsCol: tsCol, cols: cols}, nil
}

// Append inserts one row. Timestamps must arrive strictly increasing;
// the primary key rejects duplicates.
func (w *Writer) Append(ts uint64, values []float64) error {
	if len(values) != len(w.cols) {
		return &market.DimensionError{Want: len(w.cols), Got: len(values)}
	}
	ph := make([]string, len(values)+1)
	for i := range ph {
		ph[i] = "?"
	}
	q := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES (%s)`,
		w.table, w.tsCol, strings.Join(w.cols, ", "), strings.Join(ph, ", "))
	args := make([]any, 0, len(values)+1)
	args = append(args, ts)
	for _, v := range values {
		args = append(args, v)
	}
	_, err := w.db.Exec(q, args...)
	return err
}

func (w *Writer) Close() error { return w.db.Close() }

// checkIdent restricts SQL identifiers sourced from configuration.
func checkIdent(name string) error {
	if name == "" {
		return market.Configf("empty identifier")
	}
	for i, r := range name {
		alpha := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if !alpha && !(digit && i > 0) {
			return market.Configf("invalid identifier %q", name)
		}
	}
	return nil
}
