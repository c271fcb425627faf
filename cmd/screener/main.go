package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"DollarSentinel/internal/collector"
	"DollarSentinel/internal/config"
	"DollarSentinel/internal/export"
	"DollarSentinel/internal/logging"
	"DollarSentinel/internal/notifier"
	"DollarSentinel/internal/scheduler"
	"DollarSentinel/internal/screener"
	"DollarSentinel/internal/store"
)

func main() {
	app := &cli.App{
		Name:  "screener",
		Usage: "decide whether now is a good time to buy dollars",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "configs/config.yaml",
				EnvVars: []string{"CONFIG_PATH"},
				Usage:   "path to the YAML config",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "run one analysis and print the report",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "amount", Usage: "local currency to convert (default from config)"},
					&cli.IntFlag{Name: "window", Usage: "window in trading days: 126, 252 or 504"},
					&cli.Float64Flag{Name: "fee-rate", Usage: "exchange fee rate (default from config)"},
					&cli.StringFlag{Name: "csv", Usage: "write the summary CSV to this path (a directory gets a dated file name)"},
				},
				Action: runAnalyze,
			},
			{
				Name:   "serve",
				Usage:  "run the daily schedule and answer Telegram commands",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "run-on-start", EnvVars: []string{"RUN_ON_START"}}},
				Action: runServe,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type deps struct {
	cfg     *config.Config
	service *screener.Service
	store   store.SeriesStore
}

func setup(c *cli.Context) (*deps, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}

	var st store.SeriesStore = store.NewNoopStore()
	if cfg.Cache.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Cache.SQLitePath), 0o755); err != nil {
			log.Warnf("create cache dir: %v", err)
		}
		sqliteStore, err := store.NewSQLiteStore(cfg.Cache.SQLitePath)
		if err != nil {
			log.Warnf("init sqlite cache failed, running without cache: %v", err)
		} else {
			st = sqliteStore
			fetcher = collector.NewCachingFetcher(fetcher, st, cfg.Cache.MaxAge)
		}
	}
	log.WithField("source", fetcher.Name()).Info("data source ready")

	col := collector.NewCollector(fetcher, cfg.DataSource.RateSymbol, cfg.DataSource.DXYSymbol)
	return &deps{cfg: cfg, service: screener.NewService(col), store: st}, nil
}

func (a *deps) defaults() screener.Request {
	return screener.Request{
		Amount:  a.cfg.Analysis.Amount,
		Window:  a.cfg.Analysis.Window,
		FeeRate: a.cfg.Analysis.FeeRate,
	}
}

func runAnalyze(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}
	defer a.store.Close()

	req := a.defaults()
	if c.IsSet("amount") {
		req.Amount = c.Float64("amount")
	}
	if c.IsSet("window") {
		req.Window = c.Int("window")
	}
	if c.IsSet("fee-rate") {
		req.FeeRate = c.Float64("fee-rate")
	}

	resp, err := a.service.Analyze(c.Context, req)
	if err != nil {
		return err
	}
	fmt.Println(notifier.FormatReport(resp))

	if path := c.String("csv"); path != "" {
		written, err := export.SaveSummaryCSV(path, resp)
		if err != nil {
			return err
		}
		log.WithField("path", written).Info("summary csv written")
	}
	return nil
}

func runServe(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}
	defer a.store.Close()
	if err := a.cfg.ValidateTelegram(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy)

	sched := scheduler.NewScheduler(ctx, a.service, tn, a.defaults())
	if err := sched.RegisterAll(a.cfg.Schedule.DailyCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info("telegram polling started")

	if c.Bool("run-on-start") {
		log.Info("run-on-start enabled, executing daily analysis now")
		go sched.RunNow()
	}

	log.Info("DollarSentinel is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping...")
	cancel()
	return nil
}
