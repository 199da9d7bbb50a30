package sim

import "math"

// RiskLevel classifies the margin health of a portfolio, either as it
// stands or as it would stand after a proposed trade. It is advisory:
// Transact never consults it and never refuses a trade.
type RiskLevel int

const (
	// RiskOK means the trade (or current state) is within margin limits.
	RiskOK RiskLevel = iota

	// RiskInsufficientFunds means available margin cannot fund the
	// proposed trade's margin requirement.
	RiskInsufficientFunds

	// RiskMarginCall means equity is (or would fall) below the
	// maintenance fraction of used margin.
	RiskMarginCall
)

func (r RiskLevel) String() string {
	switch r {
	case RiskOK:
		return "ok"
	case RiskInsufficientFunds:
		return "insufficient_funds"
	case RiskMarginCall:
		return "margin_call"
	default:
		return "unknown"
	}
}

// CheckRisk reports the portfolio's standing margin health.
func (p *Portfolio) CheckRisk() RiskLevel {
	if p.usedMargin > 0 && p.Equity() < p.maintenanceMargin*p.usedMargin {
		return RiskMarginCall
	}
	return RiskOK
}

// CheckRiskAmount evaluates a proposed trade of the given signed
// notional amount against available margin and the post-trade
// maintenance floor.
func (p *Portfolio) CheckRiskAmount(amount float64) RiskLevel {
	required := math.Abs(amount) * p.requiredMargin
	if required > p.AvailableMargin() {
		return RiskInsufficientFunds
	}
	if used := p.usedMargin + required; used > 0 && p.Equity() < p.maintenanceMargin*used {
		return RiskMarginCall
	}
	return RiskOK
}

// CheckRiskUnits evaluates a proposed trade of signed units at the
// current price of the indexed asset.
func (p *Portfolio) CheckRiskUnits(assetIdx int, units float64) (RiskLevel, error) {
	if err := p.checkIdx(assetIdx); err != nil {
		return RiskOK, err
	}
	return p.CheckRiskAmount(units * p.CurrentPrices()[assetIdx]), nil
}

// CheckRiskCode is CheckRiskUnits keyed by asset code.
func (p *Portfolio) CheckRiskCode(code string, units float64) (RiskLevel, error) {
	i, err := p.assets.Index(code)
	if err != nil {
		return RiskOK, err
	}
	return p.CheckRiskUnits(i, units)
}
