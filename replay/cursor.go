package replay

import (
	"fmt"

	"github.com/rustyeddy/marketsim/market"
)

// cursor walks a store window through a bounded cache, refilling by
// re-reading the next slice of the window when exhausted.
type cursor struct {
	store     *Store
	cols      []string
	start     uint64
	end       uint64
	cacheSize int

	total    int
	consumed int
	cache    []Row
	cacheIdx int
	nextFrom uint64
}

func newCursor(store *Store, cols []string, start, end uint64, cacheSize int) (*cursor, error) {
	if cacheSize < 1 {
		return nil, market.Configf("cacheSize must be at least 1, got %d", cacheSize)
	}
	if end <= start {
		return nil, market.Configf("empty replay window [%d, %d)", start, end)
	}
	total, err := store.Count(start, end)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, market.Configf("replay window [%d, %d) holds no rows", start, end)
	}
	return &cursor{
		store:     store,
		cols:      cols,
		start:     start,
		end:       end,
		cacheSize: cacheSize,
		total:     total,
		nextFrom:  start,
	}, nil
}

// next returns the next row, or market.ErrDataExhausted past the bound.
func (c *cursor) next() (Row, error) {
	if c.consumed >= c.total {
		return Row{}, market.ErrDataExhausted
	}
	if c.cacheIdx >= len(c.cache) {
		rows, err := c.store.ReadWindow(c.cols, c.nextFrom, c.end, c.cacheSize)
		if err != nil {
			return Row{}, err
		}
		if len(rows) == 0 {
			// count said more rows exist; the file changed underneath us
			return Row{}, fmt.Errorf("replay cache refill at ts %d: %w", c.nextFrom, market.ErrDataExhausted)
		}
		c.cache = rows
		c.cacheIdx = 0
		c.nextFrom = rows[len(rows)-1].TS + 1
	}
	row := c.cache[c.cacheIdx]
	c.cacheIdx++
	c.consumed++
	return row, nil
}

// done reports whether the cursor has consumed its whole window.
func (c *cursor) done() bool { return c.consumed >= c.total }

func (c *cursor) reset() {
	c.consumed = 0
	c.cache = nil
	c.cacheIdx = 0
	c.nextFrom = c.start
}
