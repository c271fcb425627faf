package calculator

import (
	"fmt"
	"math"

	"DollarSentinel/internal/model"
)

// DefaultFeeRate is the assumed currency exchange spread (0.2%).
const DefaultFeeRate = 0.002

// ScenarioPcts are the rate moves projected in every investment plan.
var ScenarioPcts = []float64{-5, -3, -1, 0, 1, 3, 5}

// SizeInvestment converts gross (local currency) into dollars at rate, net of fees,
// and projects the holding over ScenarioPcts rate moves.
func SizeInvestment(gross, rate, feeRate float64) (*model.InvestmentPlan, error) {
	if !(gross > 0) || math.IsInf(gross, 0) {
		return nil, fmt.Errorf("amount must be positive and finite, got %v: %w", gross, ErrInvalidArgument)
	}
	if !(rate > 0) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("rate must be positive and finite, got %v: %w", rate, ErrInvalidArgument)
	}
	if !(feeRate >= 0 && feeRate < 1) {
		return nil, fmt.Errorf("fee rate must be in [0, 1), got %v: %w", feeRate, ErrInvalidArgument)
	}

	fee := gross * feeRate
	net := gross - fee
	plan := &model.InvestmentPlan{
		GrossAmount:   gross,
		FeeRate:       feeRate,
		FeeAmount:     fee,
		NetAmount:     net,
		Rate:          rate,
		QuantityGross: gross / rate,
		QuantityNet:   net / rate,
	}

	plan.Scenarios = make([]model.ScenarioRow, 0, len(ScenarioPcts))
	for _, pct := range ScenarioPcts {
		projected := rate * (1 + pct/100)
		qty := net / projected
		plan.Scenarios = append(plan.Scenarios, model.ScenarioRow{
			PctChange:         pct,
			ProjectedRate:     projected,
			ProjectedQuantity: qty,
			// Gain is valued at today's rate, not the projected one.
			ProfitLoss: (qty - plan.QuantityNet) * rate,
		})
	}
	return plan, nil
}
