package source

import (
	"fmt"

	"github.com/rustyeddy/marketsim/market"
)

// Composite owns N independently-stepped child sources and concatenates
// their observations into one vector. Child asset codes are prefixed with
// the child's position so two children of the same type cannot collide.
type Composite struct {
	children []Source
	assets   *market.AssetSet
	data     []float64
	prices   []float64
	nFeats   int
	t        uint64
}

func NewComposite(children ...Source) (*Composite, error) {
	if len(children) == 0 {
		return nil, market.Configf("composite requires at least one child source")
	}
	var assets []market.Asset
	nFeats := 0
	nPrices := 0
	for ci, child := range children {
		for _, a := range child.Assets().Assets() {
			a.Code = fmt.Sprintf("C%d_%s", ci, a.Code)
			a.Name = fmt.Sprintf("c%d_%s", ci, a.Name)
			assets = append(assets, a)
		}
		nFeats += child.NFeatures()
		nPrices += child.NAssets()
	}
	set, err := market.NewAssetSetFrom(assets)
	if err != nil {
		return nil, err
	}
	return &Composite{
		children: children,
		assets:   set,
		data:     make([]float64, nFeats),
		prices:   make([]float64, nPrices),
		nFeats:   nFeats,
	}, nil
}

// NewCompositeFromConfig builds children from the "sources" sequence;
// each entry is a full generator config carrying its own "type" key.
func NewCompositeFromConfig(cfg Config) (*Composite, error) {
	subs, err := cfg.Subs("sources")
	if err != nil {
		return nil, err
	}
	children := make([]Source, 0, len(subs))
	for i, sub := range subs {
		typeName, err := sub.Str("type")
		if err != nil {
			return nil, market.Configf("sources[%d]: %v", i, err)
		}
		child, err := New(typeName, sub)
		if err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		children = append(children, child)
	}
	return NewComposite(children...)
}

func (c *Composite) NAssets() int             { return len(c.prices) }
func (c *Composite) NFeatures() int           { return c.nFeats }
func (c *Composite) Assets() *market.AssetSet { return c.assets }
func (c *Composite) Current() []float64       { return c.data }
func (c *Composite) CurrentPrices() []float64 { return c.prices }
func (c *Composite) CurrentTime() uint64      { return c.t }
func (c *Composite) IsDateTime() bool         { return false }

// DataEnd reports true once any finite child is exhausted.
func (c *Composite) DataEnd() bool {
	for _, child := range c.children {
		if child.DataEnd() {
			return true
		}
	}
	return false
}

// Advance fans out to every child exactly once and concatenates.
func (c *Composite) Advance() ([]float64, error) {
	dOff, pOff := 0, 0
	for i, child := range c.children {
		obs, err := child.Advance()
		if err != nil {
			return nil, fmt.Errorf("composite child %d: %w", i, err)
		}
		copy(c.data[dOff:], obs)
		dOff += child.NFeatures()
		copy(c.prices[pOff:], child.CurrentPrices())
		pOff += child.NAssets()
	}
	c.t++
	return c.data, nil
}

func (c *Composite) Reset() error {
	for i, child := range c.children {
		if err := child.Reset(); err != nil {
			return fmt.Errorf("composite child %d: %w", i, err)
		}
	}
	c.t = 0
	return nil
}
