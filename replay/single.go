package replay

import (
	"github.com/rustyeddy/marketsim/market"
	"github.com/rustyeddy/marketsim/source"
)

// Single replays one asset's full feature row per step from a store,
// alongside a designated price column.
type Single struct {
	params SingleParams
	store  *Store
	cur    *cursor
	assets *market.AssetSet
	data   []float64
	prices []float64
	ts     uint64
}

type SingleParams struct {
	Path         string
	Table        string
	TimestampCol string
	PriceCol     string
	FeatureCols  []string
	CacheSize    int
	StartTime    uint64
	EndTime      uint64
}

func NewSingle(p SingleParams) (*Single, error) {
	if len(p.FeatureCols) == 0 {
		return nil, market.Configf("replay single needs at least one feature column")
	}
	store, err := OpenStore(p.Path, p.Table, p.TimestampCol)
	if err != nil {
		return nil, err
	}
	// price rides along as the final column of every cached row
	cols := append(append([]string(nil), p.FeatureCols...), p.PriceCol)
	cur, err := newCursor(store, cols, p.StartTime, p.EndTime, p.CacheSize)
	if err != nil {
		store.Close()
		return nil, err
	}
	assets, err := market.NewAssetSet(p.Table)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &Single{
		params: p,
		store:  store,
		cur:    cur,
		assets: assets,
		data:   make([]float64, len(p.FeatureCols)),
		prices: make([]float64, 1),
	}, nil
}

func NewSingleFromConfig(cfg source.Config) (*Single, error) {
	p, err := singleParams(cfg)
	if err != nil {
		return nil, err
	}
	return NewSingle(p)
}

func singleParams(cfg source.Config) (SingleParams, error) {
	var p SingleParams
	var err error
	if p.Path, err = cfg.Str("path"); err != nil {
		return p, err
	}
	if p.Table, err = cfg.Str("table"); err != nil {
		return p, err
	}
	if p.TimestampCol, err = cfg.Str("timestamp"); err != nil {
		return p, err
	}
	if p.PriceCol, err = cfg.Str("price"); err != nil {
		return p, err
	}
	if p.FeatureCols, err = cfg.Strs("features"); err != nil {
		return p, err
	}
	if p.CacheSize, err = cfg.Int("cacheSize"); err != nil {
		return p, err
	}
	start, err := cfg.Float("startTime")
	if err != nil {
		return p, err
	}
	end, err := cfg.Float("endTime")
	if err != nil {
		return p, err
	}
	p.StartTime, p.EndTime = uint64(start), uint64(end)
	return p, nil
}

func (s *Single) NAssets() int             { return 1 }
func (s *Single) NFeatures() int           { return len(s.params.FeatureCols) }
func (s *Single) Assets() *market.AssetSet { return s.assets }
func (s *Single) Current() []float64       { return s.data }
func (s *Single) CurrentPrices() []float64 { return s.prices }
func (s *Single) CurrentTime() uint64      { return s.ts }
func (s *Single) IsDateTime() bool         { return true }
func (s *Single) DataEnd() bool            { return s.cur.done() }

func (s *Single) Advance() ([]float64, error) {
	row, err := s.cur.next()
	if err != nil {
		return nil, err
	}
	n := len(s.data)
	copy(s.data, row.Values[:n])
	s.prices[0] = row.Values[n]
	s.ts = row.TS
	return s.data, nil
}

func (s *Single) Reset() error {
	s.cur.reset()
	s.ts = 0
	return nil
}

func (s *Single) Close() error { return s.store.Close() }
