package strategy

import (
	"fmt"

	"DollarSentinel/internal/model"
)

// Tiers maps the share of met conditions to a decision, highest first.
var Tiers = []struct {
	MinRatio float64
	Decision model.Decision
}{
	{1.0, model.DecisionStrongBuy},
	{0.75, model.DecisionBuyConsider},
	{0.5, model.DecisionHold},
	{0.25, model.DecisionCaution},
}

// DefaultDecision applies below the lowest tier.
const DefaultDecision = model.DecisionAvoid

// DecisionFor maps (met, total) to a decision. total == 0 means nothing was computable.
func DecisionFor(met, total int) model.Decision {
	if total <= 0 {
		return model.DecisionInsufficientData
	}
	for _, t := range Tiers {
		if float64(met) >= t.MinRatio*float64(total) {
			return t.Decision
		}
	}
	return DefaultDecision
}

// Explain returns the human-readable explanation for a decision.
func Explain(d model.Decision, met, total int) string {
	switch d {
	case model.DecisionStrongBuy:
		return fmt.Sprintf("All %d of %d conditions met. A very favourable time to buy dollars.", met, total)
	case model.DecisionBuyConsider:
		return fmt.Sprintf("%d of %d conditions met. Buying dollars is worth considering.", met, total)
	case model.DecisionHold:
		return fmt.Sprintf("%d of %d conditions met. A neutral time, hold and watch.", met, total)
	case model.DecisionCaution:
		return fmt.Sprintf("Only %d of %d conditions met. Conditions are somewhat unfavourable.", met, total)
	case model.DecisionAvoid:
		return fmt.Sprintf("Only %d of %d conditions met. An unfavourable time to buy dollars.", met, total)
	default:
		return "Not enough data for analysis."
	}
}

// Recommend evaluates every computable condition against the analysis and
// aggregates them into a decision with a per-condition audit trail.
func Recommend(ga *model.GapAnalysis) model.Recommendation {
	if ga == nil {
		return model.Recommendation{
			Decision:    model.DecisionInsufficientData,
			Explanation: Explain(model.DecisionInsufficientData, 0, 0),
		}
	}

	rec := model.Recommendation{}
	for _, c := range Conditions {
		margin, met, ok := c.Evaluate(ga)
		if !ok {
			continue
		}
		rec.ConditionsTotal++
		if met {
			rec.ConditionsMet++
		}
		rec.Evidence = append(rec.Evidence, model.Evidence{
			Condition: c.ID,
			Name:      c.Name,
			Met:       met,
			Margin:    margin,
			Statement: c.Describe(margin, met),
		})
	}

	rec.Decision = DecisionFor(rec.ConditionsMet, rec.ConditionsTotal)
	rec.Explanation = Explain(rec.Decision, rec.ConditionsMet, rec.ConditionsTotal)
	return rec
}
