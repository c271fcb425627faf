package screener

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"DollarSentinel/internal/calculator"
	"DollarSentinel/internal/collector"
	"DollarSentinel/internal/config"
	"DollarSentinel/internal/model"
	"DollarSentinel/internal/strategy"
)

const chartMAPeriod = 20

// Request is one analysis request.
type Request struct {
	Amount  float64 // local currency to convert
	Window  int     // trading days, one of config.AllowedWindows
	FeeRate float64
}

// Validate rejects requests the calculators would refuse.
func (r Request) Validate() error {
	if !(r.Amount > 0) || math.IsInf(r.Amount, 0) {
		return fmt.Errorf("amount must be positive and finite: %w", calculator.ErrInvalidArgument)
	}
	if !config.ValidWindow(r.Window) {
		return fmt.Errorf("window must be one of %v, got %d: %w", config.AllowedWindows, r.Window, calculator.ErrInvalidArgument)
	}
	if !(r.FeeRate >= 0 && r.FeeRate < 1) {
		return fmt.Errorf("fee rate must be in [0, 1): %w", calculator.ErrInvalidArgument)
	}
	return nil
}

// Response carries every result of one analysis. Analysis, Trend and
// DXYCurrent are nil when their inputs were insufficient; Notes says why.
type Response struct {
	ID             string
	GeneratedAt    time.Time
	Request        Request
	RateSeries     *model.PriceSeries
	DXYSeries      *model.PriceSeries
	RateCurrent    float64
	DXYCurrent     *float64
	Analysis       *model.GapAnalysis
	Trend          *model.Trend
	Recommendation model.Recommendation
	Plan           *model.InvestmentPlan
	RateMA         []model.PricePoint // 20-day moving average over the window
	Notes          []string
}

// Service runs analyses against live series.
type Service struct {
	Collector *collector.Collector
}

// NewService creates a new Service.
func NewService(col *collector.Collector) *Service {
	return &Service{Collector: col}
}

// Analyze fetches both series and evaluates them.
func (s *Service) Analyze(ctx context.Context, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	days := req.Window
	if days < chartMAPeriod {
		days = chartMAPeriod
	}
	snap, err := s.Collector.Collect(ctx, days)
	if err != nil {
		return nil, err
	}
	return Evaluate(snap, req, time.Now())
}

// Evaluate runs the calculators over an already collected snapshot.
func Evaluate(snap *collector.Snapshot, req Request, now time.Time) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	rateCurrent, ok := snap.Rate.Latest()
	if !ok {
		return nil, fmt.Errorf("rate series: %w", collector.ErrSeriesUnavailable)
	}

	resp := &Response{
		ID:          uuid.New().String(),
		GeneratedAt: now,
		Request:     req,
		RateSeries:  snap.Rate,
		DXYSeries:   snap.DXY,
		RateCurrent: rateCurrent,
	}
	if v, ok := snap.DXY.Latest(); ok {
		resp.DXYCurrent = &v
	} else {
		resp.note("dollar index unavailable")
	}

	ga, err := calculator.ComputeGap(rateCurrent, snap.Rate, resp.DXYCurrent, snap.DXY, req.Window)
	switch {
	case errors.Is(err, calculator.ErrInsufficientData):
		resp.note(fmt.Sprintf("rate history shorter than %d days", req.Window))
	case err != nil:
		return nil, fmt.Errorf("compute gap: %w", err)
	default:
		resp.Analysis = ga
		if ga.DXYStats == nil && snap.DXY != nil {
			resp.note(fmt.Sprintf("dollar index history shorter than %d days", req.Window))
		}
	}

	resp.Recommendation = strategy.Recommend(resp.Analysis)

	if tr, err := calculator.ClassifyTrend(snap.DXY); err == nil {
		resp.Trend = tr
	}

	plan, err := calculator.SizeInvestment(req.Amount, rateCurrent, req.FeeRate)
	if err != nil {
		return nil, fmt.Errorf("size investment: %w", err)
	}
	resp.Plan = plan

	if ma, err := calculator.RollingSMA(snap.Rate.Tail(req.Window), chartMAPeriod); err == nil {
		resp.RateMA = ma
	}

	log.WithFields(log.Fields{
		"id":       resp.ID,
		"window":   req.Window,
		"decision": resp.Recommendation.Decision,
		"met":      resp.Recommendation.ConditionsMet,
		"total":    resp.Recommendation.ConditionsTotal,
	}).Info("analysis complete")
	return resp, nil
}

func (r *Response) note(msg string) {
	r.Notes = append(r.Notes, msg)
}
