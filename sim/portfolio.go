// Package sim implements the accounting side of the simulation: the
// Portfolio ledger with margin and leverage, the Account/Broker
// aggregation hierarchy, and the Env composition root that binds a
// market-data source into that hierarchy.
package sim

import (
	"fmt"
	"math"

	"github.com/rustyeddy/marketsim/market"
	"github.com/rustyeddy/marketsim/source"
)

const (
	defaultRequiredMargin    = 1.0  // no leverage: trades fully cash-funded
	defaultMaintenanceMargin = 0.25 // equity/usedMargin floor before margin call
)

// Portfolio is one accounting book: cash, signed positions, mean entry
// prices and margin state for a fixed asset set. Prices are read from a
// borrowed data source; the portfolio never advances it.
//
// Two invariants hold in every reachable state:
//
//	equity = cash + Σ position_i*price_i − Σ borrowed_i
//	usedMargin = Σ |position_i*meanEntry_i| * requiredMargin
//
// and a zero-cost transaction executed at the current price never
// changes equity: trading reallocates value between cash, position and
// borrowed liability, it does not create or destroy it.
type Portfolio struct {
	id       string
	assets   *market.AssetSet
	initCash float64

	cash      float64
	ledger    []float64
	meanEntry []float64
	borrowed  []float64

	usedMargin        float64
	requiredMargin    float64
	maintenanceMargin float64

	src source.Source // borrowed, may be nil until bound
}

func NewPortfolio(id string, assets *market.AssetSet, initCash float64) (*Portfolio, error) {
	if assets == nil || assets.Len() == 0 {
		return nil, market.Configf("portfolio %q needs a non-empty asset set", id)
	}
	n := assets.Len()
	return &Portfolio{
		id:                id,
		assets:            assets,
		initCash:          initCash,
		cash:              initCash,
		ledger:            make([]float64, n),
		meanEntry:         make([]float64, n),
		borrowed:          make([]float64, n),
		requiredMargin:    defaultRequiredMargin,
		maintenanceMargin: defaultMaintenanceMargin,
	}, nil
}

func (p *Portfolio) ID() string                 { return p.id }
func (p *Portfolio) Assets() *market.AssetSet   { return p.assets }
func (p *Portfolio) NAssets() int               { return p.assets.Len() }
func (p *Portfolio) InitCash() float64          { return p.initCash }
func (p *Portfolio) Cash() float64              { return p.cash }
func (p *Portfolio) UsedMargin() float64        { return p.usedMargin }
func (p *Portfolio) RequiredMargin() float64    { return p.requiredMargin }
func (p *Portfolio) MaintenanceMargin() float64 { return p.maintenanceMargin }
func (p *Portfolio) DataSource() source.Source  { return p.src }

// SetRequiredMargin sets the fraction r of a trade's notional funded
// from own cash; the remainder is borrowed. r must lie in (0, 1].
func (p *Portfolio) SetRequiredMargin(r float64) error {
	if r <= 0 || r > 1 {
		return market.Configf("required margin must be in (0, 1], got %v", r)
	}
	p.requiredMargin = r
	return nil
}

func (p *Portfolio) SetMaintenanceMargin(m float64) error {
	if m < 0 || m >= 1 {
		return market.Configf("maintenance margin must be in [0, 1), got %v", m)
	}
	p.maintenanceMargin = m
	return nil
}

// SetDataSource binds the borrowed price feed. The source's asset count
// must match the portfolio's asset set.
func (p *Portfolio) SetDataSource(src source.Source) error {
	if src.NAssets() != p.assets.Len() {
		return &market.DimensionError{Want: p.assets.Len(), Got: src.NAssets()}
	}
	p.src = src
	return nil
}

// CurrentPrices returns the bound source's latest per-asset prices, or
// zeros before a source is bound. The slice is read-only and only valid
// until the source next advances.
func (p *Portfolio) CurrentPrices() []float64 {
	if p.src == nil {
		return make([]float64, p.assets.Len())
	}
	return p.src.CurrentPrices()
}

// Ledger returns a copy of the signed position sizes.
func (p *Portfolio) Ledger() []float64 {
	return append([]float64(nil), p.ledger...)
}

// LedgerNormed returns position market values as fractions of equity.
func (p *Portfolio) LedgerNormed() []float64 {
	out := make([]float64, len(p.ledger))
	eq := p.Equity()
	if eq == 0 {
		return out
	}
	prices := p.CurrentPrices()
	for i, units := range p.ledger {
		out[i] = units * prices[i] / eq
	}
	return out
}

// MeanEntryPrices returns a copy of the volume-weighted entry prices of
// the open positions (zero for flat assets).
func (p *Portfolio) MeanEntryPrices() []float64 {
	return append([]float64(nil), p.meanEntry...)
}

// BorrowedMarginLedger returns a copy of the signed per-asset borrowed
// notional.
func (p *Portfolio) BorrowedMarginLedger() []float64 {
	return append([]float64(nil), p.borrowed...)
}

// BorrowedMargin is the net borrowed notional across all assets.
func (p *Portfolio) BorrowedMargin() float64 {
	sum := 0.
	for _, b := range p.borrowed {
		sum += b
	}
	return sum
}

// PositionValues marks every position to the current prices.
func (p *Portfolio) PositionValues() []float64 {
	prices := p.CurrentPrices()
	out := make([]float64, len(p.ledger))
	for i, units := range p.ledger {
		out[i] = units * prices[i]
	}
	return out
}

// AssetValue is the mark-to-market value of all positions.
func (p *Portfolio) AssetValue() float64 {
	sum := 0.
	prices := p.CurrentPrices()
	for i, units := range p.ledger {
		sum += units * prices[i]
	}
	return sum
}

// Equity is cash plus position value minus borrowed liabilities. It is
// always computable without executing a trade.
func (p *Portfolio) Equity() float64 {
	return p.cash + p.AssetValue() - p.BorrowedMargin()
}

// AvailableMargin is the equity not already committed as used margin.
func (p *Portfolio) AvailableMargin() float64 {
	return p.Equity() - p.usedMargin
}

// PnL is total profit and loss since construction.
func (p *Portfolio) PnL() float64 {
	return p.Equity() - p.initCash
}

// Position returns the signed position size for an asset code.
func (p *Portfolio) Position(code string) (float64, error) {
	i, err := p.assets.Index(code)
	if err != nil {
		return 0, err
	}
	return p.ledger[i], nil
}

// Transact executes a signed trade of units at price, charging cost from
// cash. It performs no risk validation; callers wanting an advisory
// check use CheckRisk first. A trade that would cross zero is split into
// a full close followed by a fresh open at price.
func (p *Portfolio) Transact(assetIdx int, price, units, cost float64) error {
	if err := p.checkIdx(assetIdx); err != nil {
		return err
	}
	pos := p.ledger[assetIdx]
	switch {
	case units == 0:
		// cost-only trade, nothing to book
	case pos == 0 || sameSign(pos, units):
		p.open(assetIdx, price, units)
	case math.Abs(units) <= math.Abs(pos):
		p.reduce(assetIdx, price, units)
	default:
		residual := pos + units
		p.reduce(assetIdx, price, -pos)
		p.open(assetIdx, price, residual)
	}
	p.cash -= cost
	p.recomputeUsedMargin()
	return nil
}

// TransactCode is Transact keyed by asset code.
func (p *Portfolio) TransactCode(code string, price, units, cost float64) error {
	i, err := p.assets.Index(code)
	if err != nil {
		return err
	}
	return p.Transact(i, price, units, cost)
}

// Close flattens the asset's position with a single opposing trade at
// price. Closing a flat position is a no-op.
func (p *Portfolio) Close(assetIdx int, price, cost float64) error {
	if err := p.checkIdx(assetIdx); err != nil {
		return err
	}
	units := -p.ledger[assetIdx]
	if units == 0 {
		return nil
	}
	return p.Transact(assetIdx, price, units, cost)
}

// CloseCode is Close keyed by asset code.
func (p *Portfolio) CloseCode(code string, price, cost float64) error {
	i, err := p.assets.Index(code)
	if err != nil {
		return err
	}
	return p.Close(i, price, cost)
}

// open books a trade that opens or extends a position without changing
// its sign. Cash funds requiredMargin of the notional, the remainder is
// borrowed; the mean entry price becomes the size-weighted average.
func (p *Portfolio) open(idx int, price, units float64) {
	notional := units * price
	p.cash -= notional * p.requiredMargin
	p.borrowed[idx] += notional * (1 - p.requiredMargin)

	pos := p.ledger[idx]
	newPos := pos + units
	p.meanEntry[idx] = (p.meanEntry[idx]*math.Abs(pos) + price*math.Abs(units)) / math.Abs(newPos)
	p.ledger[idx] = newPos
}

// reduce books a trade that shrinks the position without crossing zero:
// units is opposite in sign to the position and no larger in magnitude.
// The closed fraction's borrowed margin is repaid and the remainder of
// the proceeds (entry capital plus realized P&L against the unchanged
// mean entry price) lands in cash.
func (p *Portfolio) reduce(idx int, price, units float64) {
	pos := p.ledger[idx]
	frac := math.Abs(units) / math.Abs(pos)
	repay := p.borrowed[idx] * frac

	p.cash += -units*price - repay
	p.borrowed[idx] -= repay
	p.ledger[idx] = pos + units
	if p.ledger[idx] == 0 {
		p.meanEntry[idx] = 0
		p.borrowed[idx] = 0
	}
}

// recomputeUsedMargin rederives used margin from the ledger and mean
// entry prices; it is a derived quantity, never independently tracked.
func (p *Portfolio) recomputeUsedMargin() {
	sum := 0.
	for i, units := range p.ledger {
		sum += math.Abs(units * p.meanEntry[i])
	}
	p.usedMargin = sum * p.requiredMargin
}

func (p *Portfolio) checkIdx(i int) error {
	if i < 0 || i >= p.assets.Len() {
		return &market.UnknownAssetError{Code: fmt.Sprintf("index %d", i)}
	}
	return nil
}

func sameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}
