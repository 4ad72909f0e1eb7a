package scheduler

import (
	"context"
	"fmt"
	"log"

	"QuantSentinel/internal/engine"
	"QuantSentinel/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic indicator report computation for a fixed set
// of symbols.
type Scheduler struct {
	Cron         *cron.Cron
	Engine       *engine.Engine
	Recorder     recorder.Recorder
	Symbols      []string
	Interval     string
	SampleBudget int
	Ctx          context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, eng *engine.Engine, rec recorder.Recorder, symbols []string, interval string, sampleBudget int) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Engine:       eng,
		Recorder:     rec,
		Symbols:      symbols,
		Interval:     interval,
		SampleBudget: sampleBudget,
		Ctx:          ctx,
	}
}

// Register adds the report task under the given cron spec.
func (s *Scheduler) Register(reportCron string) error {
	if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the report task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.reportTask()
}

func (s *Scheduler) reportTask() {
	log.Printf("[INFO] running report task for %d symbols", len(s.Symbols))
	for _, symbol := range s.Symbols {
		select {
		case <-s.Ctx.Done():
			log.Println("[INFO] report task cancelled")
			return
		default:
		}

		report, err := s.Engine.ComputeReport(symbol, s.Interval, s.SampleBudget)
		if err != nil {
			log.Printf("[ERROR] compute report for %s: %v", symbol, err)
			if recErr := s.Recorder.RecordFailure(symbol, s.Interval, err.Error()); recErr != nil {
				log.Printf("[ERROR] record failure for %s: %v", symbol, recErr)
			}
			continue
		}

		if err := s.Recorder.RecordReport(report); err != nil {
			log.Printf("[ERROR] record report for %s: %v", symbol, err)
		}
		log.Printf("[INFO] report recorded for %s (market=%s)", report.Symbol, report.Market)
	}
}
