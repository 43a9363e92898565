package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"scentbase/models"
	"scentbase/repository"
	"scentbase/scraper"
)

// CatalogRefresher runs the ingestion pipeline on a cron schedule and on
// manual triggers. Overlapping runs are skipped: a trigger that arrives
// while a run is in flight is dropped, not queued.
type CatalogRefresher struct {
	cron     *cron.Cron
	pipeline *scraper.Pipeline
	runs     *repository.RunRepository
	schedule string

	mu       sync.Mutex
	running  bool
	lastRun  *models.RunStats
	cancelFn context.CancelFunc
}

// NewCatalogRefresher creates a refresher with a seconds-granularity cron,
// matching the schedule format used in configuration.
func NewCatalogRefresher(pipeline *scraper.Pipeline, runs *repository.RunRepository, schedule string) *CatalogRefresher {
	return &CatalogRefresher{
		cron:     cron.New(cron.WithSeconds()),
		pipeline: pipeline,
		runs:     runs,
		schedule: schedule,
	}
}

// Start registers the cron entry and begins scheduling. It does not run an
// initial parse; call Trigger for that.
func (cr *CatalogRefresher) Start() {
	_, err := cr.cron.AddFunc(cr.schedule, func() { cr.refresh("scheduled") })
	if err != nil {
		log.Printf("Failed to schedule catalog refresh: %v", err)
		return
	}

	cr.cron.Start()
	log.Printf("Catalog refresh scheduled: %s", cr.schedule)
}

// Stop halts the cron scheduler and cancels any in-flight run.
func (cr *CatalogRefresher) Stop() {
	if cr.cron != nil {
		cr.cron.Stop()
	}

	cr.mu.Lock()
	cancel := cr.cancelFn
	cr.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Trigger starts a run in the background. It reports false when a run is
// already in flight.
func (cr *CatalogRefresher) Trigger() bool {
	cr.mu.Lock()
	if cr.running {
		cr.mu.Unlock()
		return false
	}
	cr.running = true
	cr.mu.Unlock()

	go func() {
		defer cr.finish()
		cr.run("manual")
	}()
	return true
}

// Status reports whether a run is in flight and the stats of the last
// completed run. The persisted history is consulted when the process has
// not run a parse yet.
func (cr *CatalogRefresher) Status() (bool, *models.RunStats) {
	cr.mu.Lock()
	running := cr.running
	last := cr.lastRun
	cr.mu.Unlock()

	if last == nil {
		persisted, err := cr.runs.GetLatestRun()
		if err != nil {
			log.Printf("Failed to load last parse run: %v", err)
		} else {
			last = persisted
		}
	}
	return running, last
}

// refresh is the cron entry point; it applies the same single-flight guard
// as Trigger.
func (cr *CatalogRefresher) refresh(reason string) {
	cr.mu.Lock()
	if cr.running {
		cr.mu.Unlock()
		log.Printf("Skipping %s catalog refresh: a run is already in flight", reason)
		return
	}
	cr.running = true
	cr.mu.Unlock()

	defer cr.finish()
	cr.run(reason)
}

func (cr *CatalogRefresher) run(reason string) {
	log.Printf("Catalog refresh starting (%s)", reason)

	ctx, cancel := context.WithCancel(context.Background())
	cr.mu.Lock()
	cr.cancelFn = cancel
	cr.mu.Unlock()
	defer cancel()

	stats, err := cr.pipeline.Run(ctx)
	if err != nil {
		log.Printf("Catalog refresh failed (%s): %v", reason, err)
	}
	if stats.FinishedAt.IsZero() {
		stats.FinishedAt = time.Now()
	}

	cr.mu.Lock()
	cr.lastRun = stats
	cr.mu.Unlock()

	if err := cr.runs.SaveRun(stats); err != nil {
		log.Printf("Failed to persist parse run: %v", err)
	}
}

func (cr *CatalogRefresher) finish() {
	cr.mu.Lock()
	cr.running = false
	cr.cancelFn = nil
	cr.mu.Unlock()
}
