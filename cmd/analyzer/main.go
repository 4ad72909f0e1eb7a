package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"QuantSentinel/internal/config"
	"QuantSentinel/internal/engine"
	"QuantSentinel/internal/recorder"
	"QuantSentinel/internal/scheduler"
	"QuantSentinel/internal/source"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] QuantSentinel starting...")

	// .env is optional; real env vars win either way.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init data sources
	gate := source.NewGateSource(cfg.DataSource.GateBaseURL, cfg.Proxy)
	tushare := source.NewTushareSource(cfg.DataSource.TushareBaseURL, cfg.DataSource.TushareToken, cfg.Proxy)
	log.Printf("[INFO] data sources: %s, %s", gate.Name(), tushare.Name())

	// Init engine
	funding := engine.NewFundingResolver(gate, cfg.FundingDefaults)
	eng := engine.New(gate, tushare, funding)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// One-shot mode: compute each symbol once, print JSON envelopes, exit.
	if os.Getenv("RUN_ONCE") == "true" {
		runOnce(eng, cfg)
		return
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, eng, rec, cfg.Symbols, cfg.Interval, cfg.SampleBudget)
	if err := sched.Register(cfg.Schedule.ReportCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing report task now")
		go sched.RunNow()
	}

	log.Println("[INFO] QuantSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] QuantSentinel stopped")
}

func runOnce(eng *engine.Engine, cfg *config.Config) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, symbol := range cfg.Symbols {
		report, err := eng.ComputeReport(symbol, cfg.Interval, cfg.SampleBudget)
		if err := enc.Encode(engine.NewResponse(report, err)); err != nil {
			log.Printf("[ERROR] encode response for %s: %v", symbol, err)
		}
	}
}
