package scheduler

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"DollarSentinel/internal/notifier"
	"DollarSentinel/internal/screener"
)

// Analyzer runs one analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req screener.Request) (*screener.Response, error)
}

// Sender delivers a report.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the daily analysis and answers chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer Analyzer
	Sender   Sender
	Defaults screener.Request
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, an Analyzer, snd Sender, defaults screener.Request) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: an,
		Sender:   snd,
		Defaults: defaults,
		Ctx:      ctx,
	}
}

// RegisterAll registers the daily analysis task.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info("scheduler stopped")
}

// RunNow executes the daily task immediately.
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Info("running daily analysis")
	resp, err := s.Analyzer.Analyze(s.Ctx, s.Defaults)
	if err != nil {
		log.Errorf("daily analysis: %v", err)
		s.trySend(failureText(err))
		return
	}
	s.trySend(notifier.FormatReport(resp))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}

	switch fields[0] {
	case "/analyze":
		req, err := s.parseRequest(fields[1:])
		if err != nil {
			return fmt.Sprintf("❌ %s\n\n%s", html.EscapeString(err.Error()), notifier.FormatHelp())
		}
		resp, err := s.Analyzer.Analyze(ctx, req)
		if err != nil {
			return failureText(err)
		}
		return notifier.FormatReport(resp)
	case "/scenario":
		args := fields[1:]
		if len(args) > 1 {
			args = args[:1]
		}
		req, err := s.parseRequest(args)
		if err != nil {
			return fmt.Sprintf("❌ %s\n\n%s", html.EscapeString(err.Error()), notifier.FormatHelp())
		}
		resp, err := s.Analyzer.Analyze(ctx, req)
		if err != nil {
			return failureText(err)
		}
		return notifier.FormatPlan(resp.Plan)
	default:
		return notifier.FormatHelp()
	}
}

// parseRequest reads optional [amount] [window] arguments over the defaults.
func (s *Scheduler) parseRequest(args []string) (screener.Request, error) {
	req := s.Defaults
	if len(args) > 0 {
		amount, err := strconv.ParseFloat(strings.ReplaceAll(args[0], ",", ""), 64)
		if err != nil {
			return req, fmt.Errorf("invalid amount %q", args[0])
		}
		req.Amount = amount
	}
	if len(args) > 1 {
		w, err := strconv.Atoi(args[1])
		if err != nil {
			return req, fmt.Errorf("invalid window %q", args[1])
		}
		req.Window = w
	}
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

// failureText escapes err for HTML parse mode; upstream errors can carry
// raw response bodies.
func failureText(err error) string {
	return "❌ Analysis failed: " + html.EscapeString(err.Error())
}

func (s *Scheduler) trySend(text string) {
	if err := s.Sender.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Errorf("send notification: %v", err)
	}
}
