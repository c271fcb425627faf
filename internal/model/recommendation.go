package model

// Decision is the ordinal recommendation scale.
type Decision string

const (
	DecisionStrongBuy        Decision = "strong-buy"
	DecisionBuyConsider      Decision = "buy-consider"
	DecisionHold             Decision = "hold"
	DecisionCaution          Decision = "caution"
	DecisionAvoid            Decision = "avoid"
	DecisionInsufficientData Decision = "insufficient-data"
)

// Evidence is the audit record of one evaluated condition.
type Evidence struct {
	Condition int
	Name      string
	Met       bool
	Margin    float64
	Statement string
}

// Recommendation is the final output of the recommendation engine.
type Recommendation struct {
	Decision        Decision
	Explanation     string
	Evidence        []Evidence
	ConditionsMet   int
	ConditionsTotal int
}
