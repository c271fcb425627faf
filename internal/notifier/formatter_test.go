package notifier

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DollarSentinel/internal/calculator"
	"DollarSentinel/internal/model"
	"DollarSentinel/internal/screener"
)

func f(v float64) *float64 { return &v }

func TestFormatReport_Full(t *testing.T) {
	plan, err := calculator.SizeInvestment(1_000_000, 1300, calculator.DefaultFeeRate)
	require.NoError(t, err)
	resp := &screener.Response{
		GeneratedAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		Request:     screener.Request{Amount: 1_000_000, Window: 252},
		RateCurrent: 1300,
		DXYCurrent:  f(99),
		Analysis: &model.GapAnalysis{
			RateVsMidPct:    -1.5,
			DXYVsMidPct:     f(-0.4),
			CurrentGapRatio: f(7.62),
			MidGapRatio:     f(7.5),
			FairValueRate:   f(1320),
			RateStats:       model.WindowStats{Current: 1300, Min: 1250, Mid: 1320, Max: 1390},
			DXYStats:        &model.WindowStats{Current: 99, Min: 96, Mid: 99.4, Max: 102.8},
		},
		Recommendation: model.Recommendation{
			Decision:        model.DecisionStrongBuy,
			Explanation:     "All 4 of 4 conditions met.",
			Evidence:        []model.Evidence{{Condition: 1, Met: true, Statement: "rate below mid"}},
			ConditionsMet:   4,
			ConditionsTotal: 4,
		},
		Plan:  plan,
		Trend: &model.Trend{MediumTerm: model.TrendUp, ShortTerm: model.TrendDown},
	}

	out := FormatReport(resp)
	assert.Contains(t, out, "2025-06-02")
	assert.Contains(t, out, "₩1,300 (-1.50% vs mid)")
	assert.Contains(t, out, "DXY: 99.00 (-0.40% vs mid)")
	assert.Contains(t, out, "Fair value: ₩1,320")
	assert.Contains(t, out, "🟢 strong-buy")
	assert.Contains(t, out, "✅ 1. rate below mid")
	assert.Contains(t, out, "Amount: ₩1,000,000 | fee (0.2%): ₩2,000")
	assert.Contains(t, out, "₩+0")
	assert.Contains(t, out, "medium-term: up | short-term: down")
}

func TestFormatReport_Degraded(t *testing.T) {
	resp := &screener.Response{
		Request:        screener.Request{Amount: 1, Window: 252},
		RateCurrent:    1300,
		Recommendation: model.Recommendation{Decision: model.DecisionInsufficientData, Explanation: "Not enough data for analysis."},
		Notes:          []string{"dollar index unavailable"},
	}
	out := FormatReport(resp)
	assert.Contains(t, out, "DXY: N/A")
	assert.Contains(t, out, "Gap ratio: N/A")
	assert.Contains(t, out, "Fair value: N/A")
	assert.Contains(t, out, "⚠️ dollar index unavailable")
	assert.NotContains(t, out, "Evidence")
}

func TestSignedWon(t *testing.T) {
	assert.Equal(t, "₩+0", signedWon(0))
	assert.Equal(t, "₩+52,526", signedWon(52525.6))
	assert.Equal(t, "₩-29,069", signedWon(-29068.7))
}

func TestSplitMessage(t *testing.T) {
	text := strings.Repeat("0123456789\n", 10)
	parts := splitMessage(text, 25)
	assert.Equal(t, text, strings.Join(parts, ""))
	for _, p := range parts {
		assert.LessOrEqual(t, len(p), 25)
	}
	assert.Equal(t, []string{"short"}, splitMessage("short", 25))
}

func TestSplitMessage_KeepsRunesWhole(t *testing.T) {
	text := strings.Repeat("₩", 20) // 60 bytes on one line
	parts := splitMessage(text, 25)
	require.Len(t, parts, 3)
	assert.Equal(t, text, strings.Join(parts, ""))
	for _, p := range parts {
		assert.True(t, utf8.ValidString(p), "part %q is not valid UTF-8", p)
		assert.LessOrEqual(t, len(p), 25)
	}
}
