package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/marketsim/market"
)

func newTestAccount(t *testing.T, initCash float64, prices ...float64) (*Account, *stubSource) {
	t.Helper()
	src := newStubSource(t, prices...)
	a, err := NewAccount("acc", src.Assets(), initCash)
	require.NoError(t, err)
	require.NoError(t, a.SetDataSource(src))
	return a, src
}

func TestAccountDefaultDelegation(t *testing.T) {
	t.Parallel()

	a, src := newTestAccount(t, 10_000, 10)

	require.NoError(t, a.Transact(0, 10, 100, 0))
	assert.InDelta(t, 9_000, a.Cash(), eps)
	assert.InDelta(t, 10_000, a.Equity(), eps)

	src.setPrice(0, 12)
	require.NoError(t, a.Close(0, 12, 0))
	assert.InDelta(t, 10_200, a.Cash(), eps)
	assert.InDelta(t, 200, a.PnL(), eps)
}

func TestAccountMultiplePortfolios(t *testing.T) {
	t.Parallel()

	a, _ := newTestAccount(t, 5_000, 10)

	extra, err := NewPortfolio("extra", a.Default().Assets(), 2_000)
	require.NoError(t, err)
	require.NoError(t, a.AddPortfolio(extra))
	assert.Equal(t, 2, a.NPortfolios())

	// the data source propagates to late additions
	assert.Equal(t, []float64{10}, extra.CurrentPrices())

	require.NoError(t, extra.Transact(0, 10, 50, 0))
	assert.InDelta(t, 6_500, a.SumCash(), eps)
	assert.InDelta(t, 7_000, a.SumEquity(), eps)

	got, err := a.Portfolio("extra")
	require.NoError(t, err)
	assert.Same(t, extra, got)
}

func TestAccountDuplicatePortfolioID(t *testing.T) {
	t.Parallel()

	a, _ := newTestAccount(t, 1_000, 10)

	dup, err := NewPortfolio(a.Default().ID(), a.Default().Assets(), 1)
	require.NoError(t, err)

	var cerr *market.ConfigError
	assert.ErrorAs(t, a.AddPortfolio(dup), &cerr)
}

func TestAccountPortfolioLookupMiss(t *testing.T) {
	t.Parallel()

	a, _ := newTestAccount(t, 1_000, 10)
	_, err := a.Portfolio("missing")

	var cerr *market.ConfigError
	assert.ErrorAs(t, err, &cerr)
}

func TestAccountFromPortfolio(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, 3_000, 10)
	a, err := NewAccountFrom("wrapped", p)
	require.NoError(t, err)
	assert.Same(t, p, a.Default())
	assert.InDelta(t, 3_000, a.Equity(), eps)

	_, err = NewAccountFrom("empty", nil)
	assert.Error(t, err)
}
