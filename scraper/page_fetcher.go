package scraper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// FetcherOptions configures the HTTP fetch behavior.
type FetcherOptions struct {
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	UserAgent  string
}

// DefaultFetcherOptions returns the retry/timeout defaults used by the
// pipeline.
func DefaultFetcherOptions() *FetcherOptions {
	return &FetcherOptions{
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
		UserAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}

// PageFetcher retrieves and parses HTML pages with a bounded retry budget.
type PageFetcher struct {
	client  *http.Client
	options *FetcherOptions
}

// NewPageFetcher creates a PageFetcher.
func NewPageFetcher(options *FetcherOptions) *PageFetcher {
	if options == nil {
		options = DefaultFetcherOptions()
	}
	return &PageFetcher{
		client:  &http.Client{Timeout: options.Timeout},
		options: options,
	}
}

// permanentError marks failures that retrying cannot fix (4xx responses
// other than 429).
type permanentError struct {
	status int
	url    string
}

func (e *permanentError) Error() string {
	return fmt.Sprintf("permanent fetch failure for %s: status %d", e.url, e.status)
}

// IsPermanentFetchError reports whether err is a non-retryable fetch failure.
func IsPermanentFetchError(err error) bool {
	_, ok := err.(*permanentError)
	return ok
}

// Fetch retrieves url and returns the parsed document. Transient failures
// (network errors, 5xx, 429) are retried up to the configured budget;
// permanent failures return immediately.
func (f *PageFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	var lastErr error

	for attempt := 1; attempt <= f.options.MaxRetries; attempt++ {
		doc, err := f.fetchOnce(ctx, url)
		if err == nil {
			return doc, nil
		}
		if IsPermanentFetchError(err) || ctx.Err() != nil {
			return nil, err
		}

		lastErr = err
		if attempt < f.options.MaxRetries {
			log.Printf("Fetch failed (attempt %d/%d) for %s: %v", attempt, f.options.MaxRetries, url, err)
			select {
			case <-time.After(f.options.RetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("fetch failed after %d attempts: %w", f.options.MaxRetries, lastErr)
}

func (f *PageFetcher) fetchOnce(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.options.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("transient fetch failure for %s: status %d", url, resp.StatusCode)
	default:
		return nil, &permanentError{status: resp.StatusCode, url: url}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", url, err)
	}
	return doc, nil
}
