package sim

import (
	"github.com/rustyeddy/marketsim/market"
	"github.com/rustyeddy/marketsim/source"
)

// Broker is the top of the accounting hierarchy: it owns accounts the
// way an account owns portfolios, with the same default-delegation
// shape. Order handling stays deliberately simple: every trade fills
// immediately and in full at the price it was submitted with.
type Broker struct {
	id       string
	accounts []*Account
	byID     map[string]*Account
	src      source.Source
}

func NewBroker(id string, assets *market.AssetSet, initCash float64) (*Broker, error) {
	acc, err := NewAccount(id+"_acc", assets, initCash)
	if err != nil {
		return nil, err
	}
	b := &Broker{id: id, byID: make(map[string]*Account)}
	b.accounts = append(b.accounts, acc)
	b.byID[acc.ID()] = acc
	return b, nil
}

func (b *Broker) ID() string            { return b.id }
func (b *Broker) Default() *Account     { return b.accounts[0] }
func (b *Broker) Accounts() []*Account  { return b.accounts }
func (b *Broker) NAccounts() int        { return len(b.accounts) }

// Account looks up an account by id.
func (b *Broker) Account(id string) (*Account, error) {
	a, ok := b.byID[id]
	if !ok {
		return nil, market.Configf("broker %q has no account %q", b.id, id)
	}
	return a, nil
}

// AddAccount registers a further account under a unique id.
func (b *Broker) AddAccount(a *Account) error {
	if _, ok := b.byID[a.ID()]; ok {
		return market.Configf("broker %q already has account %q", b.id, a.ID())
	}
	if b.src != nil {
		if err := a.SetDataSource(b.src); err != nil {
			return err
		}
	}
	b.accounts = append(b.accounts, a)
	b.byID[a.ID()] = a
	return nil
}

// SetDataSource binds the borrowed price feed to every account.
func (b *Broker) SetDataSource(src source.Source) error {
	for _, a := range b.accounts {
		if err := a.SetDataSource(src); err != nil {
			return err
		}
	}
	b.src = src
	return nil
}

func (b *Broker) DataSource() source.Source { return b.src }

func (b *Broker) Cash() float64            { return b.Default().Cash() }
func (b *Broker) Equity() float64          { return b.Default().Equity() }
func (b *Broker) UsedMargin() float64      { return b.Default().UsedMargin() }
func (b *Broker) AvailableMargin() float64 { return b.Default().AvailableMargin() }
func (b *Broker) BorrowedMargin() float64  { return b.Default().BorrowedMargin() }
func (b *Broker) PnL() float64             { return b.Default().PnL() }
func (b *Broker) Ledger() []float64        { return b.Default().Ledger() }
func (b *Broker) CurrentPrices() []float64 { return b.Default().CurrentPrices() }

func (b *Broker) Transact(assetIdx int, price, units, cost float64) error {
	return b.Default().Transact(assetIdx, price, units, cost)
}

func (b *Broker) TransactCode(code string, price, units, cost float64) error {
	return b.Default().TransactCode(code, price, units, cost)
}

func (b *Broker) Close(assetIdx int, price, cost float64) error {
	return b.Default().Close(assetIdx, price, cost)
}

func (b *Broker) CheckRisk() RiskLevel { return b.Default().CheckRisk() }

func (b *Broker) CheckRiskUnits(assetIdx int, units float64) (RiskLevel, error) {
	return b.Default().CheckRiskUnits(assetIdx, units)
}
