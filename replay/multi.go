package replay

import (
	"github.com/rustyeddy/marketsim/market"
	"github.com/rustyeddy/marketsim/source"
)

// Multi replays several assets' prices per step: one store column per
// asset, named after it.
type Multi struct {
	params MultiParams
	store  *Store
	cur    *cursor
	assets *market.AssetSet
	data   []float64
	ts     uint64
}

type MultiParams struct {
	Path         string
	Table        string
	TimestampCol string
	PriceCols    []string
	CacheSize    int
	StartTime    uint64
	EndTime      uint64
}

func NewMulti(p MultiParams) (*Multi, error) {
	if len(p.PriceCols) == 0 {
		return nil, market.Configf("replay multi needs at least one price column")
	}
	store, err := OpenStore(p.Path, p.Table, p.TimestampCol)
	if err != nil {
		return nil, err
	}
	cur, err := newCursor(store, p.PriceCols, p.StartTime, p.EndTime, p.CacheSize)
	if err != nil {
		store.Close()
		return nil, err
	}
	assets, err := market.NewAssetSet(p.PriceCols...)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &Multi{
		params: p,
		store:  store,
		cur:    cur,
		assets: assets,
		data:   make([]float64, len(p.PriceCols)),
	}, nil
}

func NewMultiFromConfig(cfg source.Config) (*Multi, error) {
	var p MultiParams
	var err error
	if p.Path, err = cfg.Str("path"); err != nil {
		return nil, err
	}
	if p.Table, err = cfg.Str("table"); err != nil {
		return nil, err
	}
	if p.TimestampCol, err = cfg.Str("timestamp"); err != nil {
		return nil, err
	}
	if p.PriceCols, err = cfg.Strs("prices"); err != nil {
		return nil, err
	}
	if p.CacheSize, err = cfg.Int("cacheSize"); err != nil {
		return nil, err
	}
	start, err := cfg.Float("startTime")
	if err != nil {
		return nil, err
	}
	end, err := cfg.Float("endTime")
	if err != nil {
		return nil, err
	}
	p.StartTime, p.EndTime = uint64(start), uint64(end)
	return NewMulti(p)
}

func (m *Multi) NAssets() int             { return len(m.params.PriceCols) }
func (m *Multi) NFeatures() int           { return len(m.params.PriceCols) }
func (m *Multi) Assets() *market.AssetSet { return m.assets }
func (m *Multi) Current() []float64       { return m.data }
func (m *Multi) CurrentPrices() []float64 { return m.data }
func (m *Multi) CurrentTime() uint64      { return m.ts }
func (m *Multi) IsDateTime() bool         { return true }
func (m *Multi) DataEnd() bool            { return m.cur.done() }

func (m *Multi) Advance() ([]float64, error) {
	row, err := m.cur.next()
	if err != nil {
		return nil, err
	}
	copy(m.data, row.Values)
	m.ts = row.TS
	return m.data, nil
}

func (m *Multi) Reset() error {
	m.cur.reset()
	m.ts = 0
	return nil
}

func (m *Multi) Close() error { return m.store.Close() }
