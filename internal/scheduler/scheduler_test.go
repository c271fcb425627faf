package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DollarSentinel/internal/collector"
	"DollarSentinel/internal/screener"
)

type fakeSender struct{ sent []string }

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.sent = append(f.sent, text)
	return nil
}

type failingAnalyzer struct{}

func (failingAnalyzer) Analyze(context.Context, screener.Request) (*screener.Response, error) {
	return nil, errors.New("upstream down")
}

// recordingAnalyzer wraps a real service and remembers the last request.
type recordingAnalyzer struct {
	inner *screener.Service
	last  screener.Request
}

func (r *recordingAnalyzer) Analyze(ctx context.Context, req screener.Request) (*screener.Response, error) {
	r.last = req
	return r.inner.Analyze(ctx, req)
}

func defaults() screener.Request {
	return screener.Request{Amount: 1_000_000, Window: 126, FeeRate: 0.002}
}

func newTestScheduler(an Analyzer, snd Sender) *Scheduler {
	return NewScheduler(context.Background(), an, snd, defaults())
}

func mockAnalyzer() *recordingAnalyzer {
	col := collector.NewCollector(&collector.MockFetcher{Price: 1300}, "KRW=X", "DX-Y.NYB")
	return &recordingAnalyzer{inner: screener.NewService(col)}
}

func TestRunNow_SendsReport(t *testing.T) {
	snd := &fakeSender{}
	newTestScheduler(mockAnalyzer(), snd).RunNow()
	require.Len(t, snd.sent, 1)
	assert.Contains(t, snd.sent[0], "DollarSentinel")
}

func TestRunNow_ReportsFailure(t *testing.T) {
	snd := &fakeSender{}
	newTestScheduler(failingAnalyzer{}, snd).RunNow()
	require.Len(t, snd.sent, 1)
	assert.Contains(t, snd.sent[0], "upstream down")
}

type htmlErrorAnalyzer struct{}

func (htmlErrorAnalyzer) Analyze(context.Context, screener.Request) (*screener.Response, error) {
	return nil, errors.New("yahoo: status 503, body: <html><body>Service Unavailable</body></html>")
}

func TestRunNow_EscapesFailureText(t *testing.T) {
	snd := &fakeSender{}
	s := newTestScheduler(htmlErrorAnalyzer{}, snd)
	s.RunNow()
	require.Len(t, snd.sent, 1)
	assert.NotContains(t, snd.sent[0], "<")
	assert.Contains(t, snd.sent[0], "&lt;html&gt;")

	out := s.HandleCommand(context.Background(), "/analyze 1000")
	assert.NotContains(t, out, "<")

	out = s.HandleCommand(context.Background(), "/analyze <b>")
	assert.Contains(t, out, "invalid amount")
	assert.NotContains(t, out, "<")
}

func TestHandleCommand_RejectsNonFiniteAmount(t *testing.T) {
	an := mockAnalyzer()
	s := newTestScheduler(an, &fakeSender{})
	for _, arg := range []string{"NaN", "Inf", "-Inf"} {
		out := s.HandleCommand(context.Background(), "/analyze "+arg)
		assert.Contains(t, out, "amount must be positive", arg)
	}
	assert.Zero(t, an.last.Amount)
}

func TestHandleCommand(t *testing.T) {
	an := mockAnalyzer()
	s := newTestScheduler(an, &fakeSender{})

	out := s.HandleCommand(context.Background(), "/analyze 2,000,000 252")
	assert.Contains(t, out, "Window: 252 days")
	assert.Equal(t, 2_000_000.0, an.last.Amount)
	assert.Equal(t, 252, an.last.Window)

	out = s.HandleCommand(context.Background(), "/scenario 500000")
	assert.Contains(t, out, "Scenarios")
	assert.Equal(t, 500000.0, an.last.Amount)
	assert.Equal(t, 126, an.last.Window)

	assert.Contains(t, s.HandleCommand(context.Background(), "/analyze -5"), "amount must be positive")
	assert.Contains(t, s.HandleCommand(context.Background(), "/analyze abc"), "invalid amount")
	assert.Contains(t, s.HandleCommand(context.Background(), "/analyze 1000 300"), "window must be one of")
	assert.Contains(t, s.HandleCommand(context.Background(), "hello"), "Commands:")
}

func TestRegisterAll_BadCron(t *testing.T) {
	s := newTestScheduler(failingAnalyzer{}, &fakeSender{})
	assert.Error(t, s.RegisterAll("not a cron"))
	assert.NoError(t, s.RegisterAll("0 0 9 * * 1-5"))
}
