package background

import (
	"context"
	"log"
	"sync"
	"time"

	"restomart/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the periodic maintenance jobs.
type JobScheduler struct {
	scheduler gocron.Scheduler
	scanner   *jobs.StockAlertScanner
	jobJobs   map[string]gocron.Job
	mu        sync.RWMutex
}

func NewJobScheduler(scanner *jobs.StockAlertScanner) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		scanner:   scanner,
		jobJobs:   make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js
}

func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	stockJob, err := js.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(js.runStockScan, context.Background()),
		gocron.WithName("low-stock-scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stock alert job: %v", err)
	} else {
		js.mu.Lock()
		js.jobJobs["stock-alerts"] = stockJob
		js.mu.Unlock()
	}
}

func (js *JobScheduler) runStockScan(ctx context.Context) {
	if err := js.scanner.Scan(ctx); err != nil {
		log.Printf("Stock alert scan failed: %v", err)
	}
}
