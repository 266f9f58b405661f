package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/quantara-lab/papertrade/internal/autotrade"
	"github.com/quantara-lab/papertrade/internal/config"
	"github.com/quantara-lab/papertrade/internal/engine"
	"github.com/quantara-lab/papertrade/internal/journal"
	"github.com/quantara-lab/papertrade/internal/logger"
	"github.com/quantara-lab/papertrade/internal/risk"
	"github.com/quantara-lab/papertrade/internal/venue"
	"github.com/quantara-lab/papertrade/internal/venue/broker"
	"github.com/quantara-lab/papertrade/internal/venue/fees"
)

// paperAction wires the full core together against the simulated venue and
// keeps the status worker running until interrupted. Signal generation is
// left to an external strategy layer; this command only hosts the session.
func paperAction(ctx context.Context, cmd *cli.Command) error {
	cfg := config.DefaultConfig()

	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cfg = loaded
	}

	log, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // stdout sync failures are harmless

	tradeJournal, err := journal.NewJournal(log)
	if err != nil {
		return fmt.Errorf("failed to create journal: %w", err)
	}
	defer tradeJournal.Close()

	if err := tradeJournal.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize journal: %w", err)
	}

	feeSchedule := fees.GetScheduleHandler(cfg.FeeSchedule, cfg.CommissionRate, cfg.StampDutyRate)
	simVenue := venue.NewSimulatedVenue(cfg.InitialCapital, feeSchedule, tradeJournal, log)
	gate := risk.NewGate(cfg.Risk, log)
	tradingEngine := engine.NewTradingEngine(simVenue, gate, log)

	autoEngine, err := autotrade.NewAutoTradingEngine(tradingEngine, cfg.AutoTrade, log)
	if err != nil {
		return fmt.Errorf("failed to create auto trading engine: %w", err)
	}

	autoEngine.AddStrategy(cmd.String("strategy"), cmd.String("instrument"), nil)

	if err := autoEngine.Start(); err != nil {
		return fmt.Errorf("failed to start auto trading: %w", err)
	}

	worker := autotrade.NewWorker(autoEngine, cmd.Duration("poll-interval"), log)
	worker.Start(ctx, func(snapshot autotrade.StatusSnapshot) {
		log.Info("Auto trading status",
			zap.String("status", string(snapshot.Status)),
			zap.Int("orders_today", snapshot.OrderCountToday),
			zap.Int("signals", snapshot.SignalCount),
			zap.Bool("in_trading_window", snapshot.InTradingWindow),
		)
	})

	<-ctx.Done()

	worker.Stop()
	autoEngine.Stop()

	account := tradingEngine.GetAccountInfo()
	log.Info("Session closed",
		zap.Float64("cash", account.Cash),
		zap.Float64("total_assets", account.TotalAssets),
		zap.Float64("total_profit", account.TotalProfit),
	)

	return nil
}

// schemaAction prints the JSON schema of the configuration surface.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	schema, err := config.Schema()
	if err != nil {
		return fmt.Errorf("failed to generate config schema: %w", err)
	}

	fmt.Println(schema)

	return nil
}

// brokersAction lists the registered broker adapters.
func brokersAction(ctx context.Context, cmd *cli.Command) error {
	for _, name := range broker.GetSupportedBrokers() {
		info, err := broker.GetBrokerInfo(name)
		if err != nil {
			return err
		}

		fmt.Printf("%s\t%s\timplemented=%t\n", info.Name, info.DisplayName, info.Implemented)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "papertrade",
		Usage: "Run the paper-trading execution core",
		Commands: []*cli.Command{
			{
				Name:  "paper",
				Usage: "Run a paper trading session against the simulated venue",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to a YAML config file",
					},
					&cli.StringFlag{
						Name:  "strategy",
						Value: "manual",
						Usage: "Strategy id to register a monitor for",
					},
					&cli.StringFlag{
						Name:  "instrument",
						Value: "600000",
						Usage: "Instrument to monitor",
					},
					&cli.DurationFlag{
						Name:  "poll-interval",
						Value: time.Minute,
						Usage: "Status poll interval",
					},
				},
				Action: paperAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the configuration surface",
				Action: schemaAction,
			},
			{
				Name:   "brokers",
				Usage:  "List registered broker adapters",
				Action: brokersAction,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatalf("papertrade: %v", err)
	}
}
