package scraper

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scentbase/models"
)

// ListingExtractor pulls listing stubs and pagination links out of a
// catalog page.
type ListingExtractor struct {
	baseURL     string
	catalogPath string
}

// NewListingExtractor creates an extractor rooted at the given base URL.
func NewListingExtractor(baseURL, catalogPath string) *ListingExtractor {
	return &ListingExtractor{baseURL: strings.TrimRight(baseURL, "/"), catalogPath: catalogPath}
}

// ExtractListings returns the raw listings found on a catalog page, in page
// order. Listings without a title are dropped.
func (e *ListingExtractor) ExtractListings(doc *goquery.Document) []models.RawListing {
	var listings []models.RawListing

	doc.Find("a.product-title").Each(func(_ int, link *goquery.Selection) {
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return
		}

		href, _ := link.Attr("href")
		listings = append(listings, models.RawListing{
			Title:    title,
			URL:      e.absoluteURL(href),
			RawPrice: findPriceText(link),
		})
	})

	return listings
}

// findPriceText walks up from the title link looking for a price element,
// since the price lives in a sibling branch of the product card markup.
func findPriceText(link *goquery.Selection) string {
	current := link
	for i := 0; i < 5; i++ {
		current = current.Parent()
		if current.Length() == 0 {
			return ""
		}
		price := current.Find(`[class*="price"]`).First()
		if price.Length() > 0 {
			return strings.TrimSpace(price.Text())
		}
	}
	return ""
}

// paginationSelectors are tried in order; the first one that matches wins.
var paginationSelectors = []string{
	"nav.pagination a",
	".pagination a",
	`a[href*="/page/"]`,
	`a[href*="page="]`,
}

// ExtractPageURLs discovers the catalog pagination URLs reachable from the
// given page, including the page itself, deduplicated and sorted.
func (e *ListingExtractor) ExtractPageURLs(doc *goquery.Document, currentURL string) []string {
	seen := map[string]bool{currentURL: true}
	urls := []string{currentURL}

	for _, selector := range paginationSelectors {
		added := 0
		doc.Find(selector).Each(func(_ int, link *goquery.Selection) {
			href, ok := link.Attr("href")
			if !ok || !strings.Contains(href, e.catalogPath) {
				return
			}
			abs := e.absoluteURL(href)
			if !seen[abs] {
				seen[abs] = true
				urls = append(urls, abs)
				added++
			}
		})
		// A selector only wins if it contributed catalog pages; matched
		// links that all point elsewhere must not end discovery.
		if added > 0 {
			break
		}
	}

	sort.Strings(urls)
	return urls
}

func (e *ListingExtractor) absoluteURL(href string) string {
	if href == "" {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if parsed.IsAbs() {
		return href
	}
	return e.baseURL + "/" + strings.TrimLeft(href, "/")
}
