package sim

import (
	"github.com/rustyeddy/marketsim/market"
	"github.com/rustyeddy/marketsim/source"
)

// Env binds a data source to a broker hierarchy and drives them in lock
// step: Step advances the source exactly once and every accounting view
// below it reprices off the new observation. The env owns the source;
// everything below borrows it.
type Env struct {
	src    source.Source
	broker *Broker
	assets *market.AssetSet
	steps  uint64
}

// NewEnv builds a source from its type name and config and wires it to
// a fresh broker over the given asset set.
func NewEnv(sourceType string, cfg source.Config, assets *market.AssetSet, initCash float64) (*Env, error) {
	src, err := NewDataSource(sourceType, cfg)
	if err != nil {
		return nil, err
	}
	env, err := NewEnvWithSource(src, assets, initCash)
	if err != nil {
		closeSource(src)
		return nil, err
	}
	return env, nil
}

// NewEnvWithSource takes ownership of an already-constructed source.
func NewEnvWithSource(src source.Source, assets *market.AssetSet, initCash float64) (*Env, error) {
	if assets == nil {
		assets = src.Assets()
	}
	if src.NAssets() != assets.Len() {
		return nil, &market.DimensionError{Want: assets.Len(), Got: src.NAssets()}
	}
	broker, err := NewBroker("broker", assets, initCash)
	if err != nil {
		return nil, err
	}
	if err := broker.SetDataSource(src); err != nil {
		return nil, err
	}
	return &Env{src: src, broker: broker, assets: assets}, nil
}

func (e *Env) Assets() *market.AssetSet  { return e.assets }
func (e *Env) DataSource() source.Source { return e.src }
func (e *Env) Broker() *Broker           { return e.broker }
func (e *Env) Account() *Account         { return e.broker.Default() }
func (e *Env) Portfolio() *Portfolio     { return e.broker.Default().Default() }

// Steps is the number of successful Step calls since construction or
// the last Reset.
func (e *Env) Steps() uint64 { return e.steps }

// Step advances the data source one tick and returns the fresh
// observation. For replay sources a step past the configured window
// fails with market.ErrDataExhausted.
func (e *Env) Step() ([]float64, error) {
	obs, err := e.src.Advance()
	if err != nil {
		return nil, err
	}
	e.steps++
	return obs, nil
}

func (e *Env) CurrentData() []float64   { return e.src.Current() }
func (e *Env) CurrentPrices() []float64 { return e.src.CurrentPrices() }
func (e *Env) CurrentTime() uint64      { return e.src.CurrentTime() }
func (e *Env) DataEnd() bool            { return e.src.DataEnd() }

func (e *Env) Cash() float64            { return e.broker.Cash() }
func (e *Env) Equity() float64          { return e.broker.Equity() }
func (e *Env) UsedMargin() float64      { return e.broker.UsedMargin() }
func (e *Env) AvailableMargin() float64 { return e.broker.AvailableMargin() }
func (e *Env) PnL() float64             { return e.broker.PnL() }
func (e *Env) Ledger() []float64        { return e.broker.Ledger() }

// Transact executes a trade at the asset's current price.
func (e *Env) Transact(assetIdx int, units, cost float64) error {
	if err := e.Portfolio().checkIdx(assetIdx); err != nil {
		return err
	}
	price := e.src.CurrentPrices()[assetIdx]
	return e.broker.Transact(assetIdx, price, units, cost)
}

// TransactCode executes a trade at the current price, keyed by code.
func (e *Env) TransactCode(code string, units, cost float64) error {
	i, err := e.assets.Index(code)
	if err != nil {
		return err
	}
	return e.Transact(i, units, cost)
}

// ClosePosition flattens a position at the asset's current price.
func (e *Env) ClosePosition(assetIdx int, cost float64) error {
	if err := e.Portfolio().checkIdx(assetIdx); err != nil {
		return err
	}
	price := e.src.CurrentPrices()[assetIdx]
	return e.broker.Close(assetIdx, price, cost)
}

func (e *Env) CheckRisk() RiskLevel { return e.broker.CheckRisk() }

func (e *Env) CheckRiskUnits(assetIdx int, units float64) (RiskLevel, error) {
	return e.broker.CheckRiskUnits(assetIdx, units)
}

// Reset rewinds the data source to its seeded or windowed start. The
// accounting state is not reset; callers wanting a fresh book build a
// new Env.
func (e *Env) Reset() error {
	if err := e.src.Reset(); err != nil {
		return err
	}
	e.steps = 0
	return nil
}

// Close releases the data source's resources, if it holds any.
func (e *Env) Close() error { return closeSource(e.src) }
