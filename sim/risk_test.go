package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskLevelString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ok", RiskOK.String())
	assert.Equal(t, "insufficient_funds", RiskInsufficientFunds.String())
	assert.Equal(t, "margin_call", RiskMarginCall.String())
	assert.Equal(t, "unknown", RiskLevel(42).String())
}

func TestRiskInsufficientFunds(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, 1_000, 10)
	require.NoError(t, p.SetRequiredMargin(0.5))

	// 150 units at 10 needs 750 margin, fits inside 1000 equity
	level, err := p.CheckRiskUnits(0, 150)
	require.NoError(t, err)
	assert.Equal(t, RiskOK, level)

	// 300 units needs 1500, more than equity
	level, err = p.CheckRiskUnits(0, 300)
	require.NoError(t, err)
	assert.Equal(t, RiskInsufficientFunds, level)

	// shorts consume margin the same way
	level, err = p.CheckRiskUnits(0, -300)
	require.NoError(t, err)
	assert.Equal(t, RiskInsufficientFunds, level)
}

func TestRiskMarginCallOnDrawdown(t *testing.T) {
	t.Parallel()

	p, src := newTestPortfolio(t, 3_000, 10)
	require.NoError(t, p.SetRequiredMargin(0.1))
	require.NoError(t, p.Transact(0, 10, 1000, 0))

	// equity 2000 + 7500 - 9000 = 500, above 0.25 * 1000
	src.setPrice(0, 7.5)
	assert.Equal(t, RiskOK, p.CheckRisk())

	// equity 200, below the 250 maintenance floor
	src.setPrice(0, 7.2)
	assert.Equal(t, RiskMarginCall, p.CheckRisk())
}

func TestRiskAdvisoryOnly(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, 100, 10)

	level, err := p.CheckRiskUnits(0, 1_000)
	require.NoError(t, err)
	assert.Equal(t, RiskInsufficientFunds, level)

	// the check never blocks the trade itself
	require.NoError(t, p.Transact(0, 10, 1_000, 0))
	assert.Equal(t, []float64{1_000}, p.Ledger())
}

func TestRiskUnknownAsset(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, 1_000, 10)

	_, err := p.CheckRiskUnits(3, 10)
	assert.Error(t, err)
	_, err = p.CheckRiskCode("NOPE", 10)
	assert.Error(t, err)
}
