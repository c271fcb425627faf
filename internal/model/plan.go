package model

// ScenarioRow is one what-if projection of the investment plan.
type ScenarioRow struct {
	PctChange         float64
	ProjectedRate     float64
	ProjectedQuantity float64
	ProfitLoss        float64 // in won, valued at the plan rate
}

// InvestmentPlan converts a local-currency amount into purchasable dollars.
type InvestmentPlan struct {
	GrossAmount   float64
	FeeRate       float64
	FeeAmount     float64
	NetAmount     float64
	Rate          float64
	QuantityGross float64
	QuantityNet   float64
	Scenarios     []ScenarioRow
}
