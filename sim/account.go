package sim

import (
	"github.com/rustyeddy/marketsim/market"
	"github.com/rustyeddy/marketsim/source"
)

// Account groups portfolios under one owner. It is created with a
// default portfolio that all single-book operations delegate to, so an
// account behaves like a portfolio until more books are added.
type Account struct {
	id         string
	portfolios []*Portfolio
	byID       map[string]*Portfolio
	src        source.Source
}

func NewAccount(id string, assets *market.AssetSet, initCash float64) (*Account, error) {
	p, err := NewPortfolio(id+"_default", assets, initCash)
	if err != nil {
		return nil, err
	}
	a := &Account{id: id, byID: make(map[string]*Portfolio)}
	a.portfolios = append(a.portfolios, p)
	a.byID[p.ID()] = p
	return a, nil
}

// NewAccountFrom wraps an existing portfolio as the account's default.
func NewAccountFrom(id string, p *Portfolio) (*Account, error) {
	if p == nil {
		return nil, market.Configf("account %q needs a portfolio", id)
	}
	a := &Account{id: id, byID: make(map[string]*Portfolio)}
	a.portfolios = append(a.portfolios, p)
	a.byID[p.ID()] = p
	a.src = p.DataSource()
	return a, nil
}

func (a *Account) ID() string               { return a.id }
func (a *Account) Default() *Portfolio      { return a.portfolios[0] }
func (a *Account) Portfolios() []*Portfolio { return a.portfolios }
func (a *Account) NPortfolios() int         { return len(a.portfolios) }

// Portfolio looks up a book by id.
func (a *Account) Portfolio(id string) (*Portfolio, error) {
	p, ok := a.byID[id]
	if !ok {
		return nil, market.Configf("account %q has no portfolio %q", a.id, id)
	}
	return p, nil
}

// AddPortfolio registers a further book. Ids must be unique within the
// account; the account's data source, if already bound, is propagated.
func (a *Account) AddPortfolio(p *Portfolio) error {
	if _, ok := a.byID[p.ID()]; ok {
		return market.Configf("account %q already has portfolio %q", a.id, p.ID())
	}
	if a.src != nil {
		if err := p.SetDataSource(a.src); err != nil {
			return err
		}
	}
	a.portfolios = append(a.portfolios, p)
	a.byID[p.ID()] = p
	return nil
}

// SetDataSource binds the borrowed price feed to every portfolio.
func (a *Account) SetDataSource(src source.Source) error {
	for _, p := range a.portfolios {
		if err := p.SetDataSource(src); err != nil {
			return err
		}
	}
	a.src = src
	return nil
}

func (a *Account) DataSource() source.Source { return a.src }

// Single-book views delegate to the default portfolio.

func (a *Account) Cash() float64            { return a.Default().Cash() }
func (a *Account) Equity() float64          { return a.Default().Equity() }
func (a *Account) AssetValue() float64      { return a.Default().AssetValue() }
func (a *Account) UsedMargin() float64      { return a.Default().UsedMargin() }
func (a *Account) AvailableMargin() float64 { return a.Default().AvailableMargin() }
func (a *Account) BorrowedMargin() float64  { return a.Default().BorrowedMargin() }
func (a *Account) PnL() float64             { return a.Default().PnL() }
func (a *Account) Ledger() []float64        { return a.Default().Ledger() }
func (a *Account) CurrentPrices() []float64 { return a.Default().CurrentPrices() }

// SumCash totals cash across every portfolio in the account.
func (a *Account) SumCash() float64 {
	sum := 0.
	for _, p := range a.portfolios {
		sum += p.Cash()
	}
	return sum
}

// SumEquity totals equity across every portfolio in the account.
func (a *Account) SumEquity() float64 {
	sum := 0.
	for _, p := range a.portfolios {
		sum += p.Equity()
	}
	return sum
}

func (a *Account) Transact(assetIdx int, price, units, cost float64) error {
	return a.Default().Transact(assetIdx, price, units, cost)
}

func (a *Account) TransactCode(code string, price, units, cost float64) error {
	return a.Default().TransactCode(code, price, units, cost)
}

func (a *Account) Close(assetIdx int, price, cost float64) error {
	return a.Default().Close(assetIdx, price, cost)
}

func (a *Account) CheckRisk() RiskLevel { return a.Default().CheckRisk() }

func (a *Account) CheckRiskUnits(assetIdx int, units float64) (RiskLevel, error) {
	return a.Default().CheckRiskUnits(assetIdx, units)
}
