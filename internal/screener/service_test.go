package screener

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DollarSentinel/internal/calculator"
	"DollarSentinel/internal/collector"
	"DollarSentinel/internal/model"
)

var now = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

// ramp builds n closes moving linearly from first to last.
func ramp(symbol string, n int, first, last float64) *model.PriceSeries {
	start := now.AddDate(0, 0, -n)
	pts := make([]model.PricePoint, n)
	for i := range pts {
		pts[i] = model.PricePoint{
			Time:  start.AddDate(0, 0, i),
			Close: first + (last-first)*float64(i)/float64(n-1),
		}
	}
	return &model.PriceSeries{Symbol: symbol, Points: pts}
}

func req() Request {
	return Request{Amount: 1_000_000, Window: 126, FeeRate: calculator.DefaultFeeRate}
}

func TestEvaluate_FullData(t *testing.T) {
	snap := &collector.Snapshot{
		Rate: ramp("KRW=X", 126, 1400, 1300),
		DXY:  ramp("DX-Y.NYB", 126, 110, 100),
	}
	resp, err := Evaluate(snap, req(), now)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 1300.0, resp.RateCurrent)
	require.NotNil(t, resp.DXYCurrent)
	require.NotNil(t, resp.Analysis)
	assert.NotNil(t, resp.Analysis.FairValueRate)
	assert.Equal(t, 4, resp.Recommendation.ConditionsTotal)

	require.NotNil(t, resp.Trend)
	assert.Equal(t, model.TrendDown, resp.Trend.MediumTerm)
	assert.Equal(t, model.TrendDown, resp.Trend.ShortTerm)

	require.NotNil(t, resp.Plan)
	assert.InDelta(t, 998000.0/1300, resp.Plan.QuantityNet, 1e-9)
	assert.Len(t, resp.RateMA, 126-20+1)
	assert.Empty(t, resp.Notes)
}

func TestEvaluate_WithoutIndex(t *testing.T) {
	snap := &collector.Snapshot{Rate: ramp("KRW=X", 130, 1300, 1250)}
	resp, err := Evaluate(snap, req(), now)
	require.NoError(t, err)

	require.NotNil(t, resp.Analysis)
	assert.Nil(t, resp.DXYCurrent)
	assert.Nil(t, resp.Analysis.DXYVsMidPct)
	assert.Nil(t, resp.Analysis.FairValueRate)
	assert.Nil(t, resp.Trend)
	assert.Equal(t, 1, resp.Recommendation.ConditionsTotal)
	assert.Equal(t, model.DecisionStrongBuy, resp.Recommendation.Decision)
	assert.Contains(t, resp.Notes, "dollar index unavailable")
}

func TestEvaluate_ShortRateHistory(t *testing.T) {
	snap := &collector.Snapshot{
		Rate: ramp("KRW=X", 100, 1300, 1350),
		DXY:  ramp("DX-Y.NYB", 100, 100, 104),
	}
	resp, err := Evaluate(snap, req(), now)
	require.NoError(t, err)

	assert.Nil(t, resp.Analysis)
	assert.Equal(t, model.DecisionInsufficientData, resp.Recommendation.Decision)
	assert.Zero(t, resp.Recommendation.ConditionsTotal)
	assert.NotNil(t, resp.Plan, "sizing does not depend on the window")
	assert.NotNil(t, resp.Trend)
}

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		r    Request
	}{
		{"zero amount", Request{Amount: 0, Window: 252}},
		{"bad window", Request{Amount: 1, Window: 200}},
		{"bad fee", Request{Amount: 1, Window: 252, FeeRate: 1.5}},
		{"NaN amount", Request{Amount: math.NaN(), Window: 252}},
		{"infinite amount", Request{Amount: math.Inf(1), Window: 252}},
		{"NaN fee", Request{Amount: 1, Window: 252, FeeRate: math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.r.Validate(), calculator.ErrInvalidArgument)
		})
	}
	assert.NoError(t, req().Validate())
}

func TestService_Analyze(t *testing.T) {
	col := collector.NewCollector(&collector.MockFetcher{Price: 1300}, "KRW=X", "DX-Y.NYB")
	resp, err := NewService(col).Analyze(context.Background(), req())
	require.NoError(t, err)
	assert.Equal(t, 126, resp.RateSeries.Len())
	assert.NotNil(t, resp.Analysis)
}

func TestService_AnalyzeRateUnavailable(t *testing.T) {
	m := &collector.MockFetcher{Fail: map[string]error{"KRW=X": errors.New("dns failure")}}
	_, err := NewService(collector.NewCollector(m, "KRW=X", "DX-Y.NYB")).Analyze(context.Background(), req())
	assert.ErrorIs(t, err, collector.ErrSeriesUnavailable)
}
