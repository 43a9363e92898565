package scraper

import (
	"context"
	"log"
	"sync"
	"time"

	"scentbase/models"
)

// CatalogStore is the persistence surface the pipeline writes to.
type CatalogStore interface {
	Upsert(record *models.PerfumeRecord) (created bool, err error)
}

// PipelineOptions configures a catalog run.
type PipelineOptions struct {
	CatalogURL string
	MaxWorkers int
	PageDelay  time.Duration
}

// Pipeline orchestrates the full catalog ingestion: sequential page
// traversal, classification and dedup per page, then a bounded worker pool
// for detail extraction, normalization and persistence.
type Pipeline struct {
	fetcher    *PageFetcher
	listings   *ListingExtractor
	classifier *TitleClassifier
	details    *DetailExtractor
	normalizer *Normalizer
	store      CatalogStore
	options    PipelineOptions
}

// NewPipeline wires the pipeline stages together.
func NewPipeline(fetcher *PageFetcher, listings *ListingExtractor, classifier *TitleClassifier,
	details *DetailExtractor, normalizer *Normalizer, store CatalogStore, options PipelineOptions) *Pipeline {
	if options.MaxWorkers <= 0 {
		options.MaxWorkers = 3
	}
	return &Pipeline{
		fetcher:    fetcher,
		listings:   listings,
		classifier: classifier,
		details:    details,
		normalizer: normalizer,
		store:      store,
		options:    options,
	}
}

// detailJob is one surviving listing headed for the detail stage.
type detailJob struct {
	listing models.RawListing
	title   models.ClassifiedTitle
}

// Run executes one full catalog parse. Individual page or listing failures
// are counted, never fatal; cancellation is honored at page boundaries and
// in-flight detail fetches are allowed to drain.
func (p *Pipeline) Run(ctx context.Context) (*models.RunStats, error) {
	stats := &models.RunStats{StartedAt: time.Now()}
	dedup := NewDeduplicator()

	log.Printf("Starting catalog parse: %s", p.options.CatalogURL)

	pageURLs, err := p.discoverPages(ctx)
	if err != nil {
		return stats, err
	}
	log.Printf("Found %d catalog pages", len(pageURLs))

	var jobs []detailJob
	for i, pageURL := range pageURLs {
		if ctx.Err() != nil {
			log.Printf("Catalog parse cancelled after %d pages", stats.Pages)
			break
		}

		pageJobs, err := p.collectPage(ctx, pageURL, dedup)
		if err != nil {
			log.Printf("Skipping page %s: %v", pageURL, err)
			stats.Failed++
			continue
		}
		stats.Pages++
		stats.Listings += len(pageJobs) // duplicates excluded below
		jobs = append(jobs, pageJobs...)

		if i < len(pageURLs)-1 {
			select {
			case <-time.After(p.options.PageDelay):
			case <-ctx.Done():
			}
		}
	}

	stats.Duplicates = dedup.Duplicates()
	stats.Listings += stats.Duplicates
	log.Printf("Collected %d unique listings (%d duplicates suppressed)", len(jobs), stats.Duplicates)

	p.runDetailStage(ctx, jobs, stats)

	stats.FinishedAt = time.Now()
	log.Printf("Catalog parse finished: pages=%d listings=%d duplicates=%d fetched=%d skipped=%d upserted=%d created=%d failed=%d",
		stats.Pages, stats.Listings, stats.Duplicates, stats.Fetched, stats.Skipped, stats.Upserted, stats.Created, stats.Failed)

	return stats, nil
}

// discoverPages fetches the catalog root and resolves the pagination set.
func (p *Pipeline) discoverPages(ctx context.Context) ([]string, error) {
	doc, err := p.fetcher.Fetch(ctx, p.options.CatalogURL)
	if err != nil {
		return nil, err
	}
	return p.listings.ExtractPageURLs(doc, p.options.CatalogURL), nil
}

// collectPage parses one catalog page and returns the first-seen listings.
func (p *Pipeline) collectPage(ctx context.Context, pageURL string, dedup *Deduplicator) ([]detailJob, error) {
	doc, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var jobs []detailJob
	for _, listing := range p.listings.ExtractListings(doc) {
		title := p.classifier.Classify(listing.Title)
		if _, first := dedup.Observe(title, listing.Title); !first {
			continue
		}
		jobs = append(jobs, detailJob{listing: listing, title: title})
	}
	return jobs, nil
}

// runDetailStage fans the surviving listings out over a bounded worker pool.
// On cancellation no new work is submitted but started fetches drain.
func (p *Pipeline) runDetailStage(ctx context.Context, jobs []detailJob, stats *models.RunStats) {
	semaphore := make(chan struct{}, p.options.MaxWorkers)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, job := range jobs {
		if ctx.Err() != nil {
			mu.Lock()
			stats.Skipped++
			mu.Unlock()
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(job detailJob) {
			defer wg.Done()
			defer func() { <-semaphore }()

			p.processListing(ctx, job, stats, &mu)
		}(job)
	}

	wg.Wait()
}

func (p *Pipeline) processListing(ctx context.Context, job detailJob, stats *models.RunStats, mu *sync.Mutex) {
	details, err := p.details.Extract(ctx, job.listing.URL)
	if err != nil {
		log.Printf("Skipping listing %q: detail fetch failed: %v", job.listing.Title, err)
		mu.Lock()
		stats.Skipped++
		mu.Unlock()
		return
	}

	mu.Lock()
	stats.Fetched++
	mu.Unlock()

	record, err := p.normalizer.Normalize(job.listing, job.title, details)
	if err != nil {
		log.Printf("Dropping listing: %v", err)
		mu.Lock()
		stats.Failed++
		mu.Unlock()
		return
	}

	created, err := p.store.Upsert(record)
	if err != nil {
		log.Printf("Failed to save %q: %v", record.FullTitle, err)
		mu.Lock()
		stats.Failed++
		mu.Unlock()
		return
	}

	mu.Lock()
	stats.Upserted++
	if created {
		stats.Created++
	}
	mu.Unlock()
}
