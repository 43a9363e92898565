package scraper

import (
	"crypto/md5"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"scentbase/config"
	"scentbase/models"
)

// Field length limits matching the relational schema. Values beyond a limit
// are truncated, never rejected.
const (
	maxKeyLen            = 255
	maxArticleLen        = 50
	maxBrandLen          = 100
	maxNameLen           = 200
	maxFactoryLen        = 100
	maxGenderLen         = 20
	maxQualityLen        = 50
	maxPriceFormattedLen = 50
	maxURLLen            = 500
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// titleArticlePatterns locate an article code inside a raw title, tried in
// order.
var titleArticlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b([A-Z]{2,}\d{3,})\b`),
	regexp.MustCompile(`\b(\d{4,})\b`),
	regexp.MustCompile(`\[([A-Z0-9\-]+)\]`),
	regexp.MustCompile(`\(([A-Z0-9\-]+)\)`),
}

var urlArticlePattern = regexp.MustCompile(`/([A-Z0-9\-]+)/?$`)

// Normalizer merges a classified title and detail attributes into one
// canonical PerfumeRecord.
type Normalizer struct {
	data      *config.CatalogData
	factories []string
	prices    *PriceParser
	baseURL   string
}

// NewNormalizer creates a Normalizer with the injected reference tables.
// Known factories are matched longest first, the same tie-break the brand
// list uses, so "Givaudan Premium" never snaps to "Givaudan".
func NewNormalizer(data *config.CatalogData, prices *PriceParser, baseURL string) *Normalizer {
	factories := make([]string, len(data.KnownFactories))
	copy(factories, data.KnownFactories)
	sort.SliceStable(factories, func(i, j int) bool {
		return len(factories[i]) > len(factories[j])
	})

	return &Normalizer{
		data:      data,
		factories: factories,
		prices:    prices,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Normalize builds the canonical record. It is pure and idempotent: the same
// inputs always produce the same record. The only rejection case is a title
// that classified to an empty name.
func (n *Normalizer) Normalize(listing models.RawListing, title models.ClassifiedTitle, details models.DetailAttributes) (*models.PerfumeRecord, error) {
	name := cleanText(title.Name)
	if name == "" {
		return nil, fmt.Errorf("listing %q has no usable name", listing.Title)
	}

	brand := cleanText(title.Brand)
	factory := n.normalizeFactory(title.Factory)
	factoryDetailed := cleanText(details.FactoryDetailed)

	record := &models.PerfumeRecord{
		Article:         truncate(n.resolveArticle(listing, title, details), maxArticleLen),
		UniqueKey:       truncate(models.IdentityKey(brand, name, factory), maxKeyLen),
		Brand:           truncate(brand, maxBrandLen),
		Name:            truncate(name, maxNameLen),
		FullTitle:       cleanText(listing.Title),
		Factory:         truncate(factory, maxFactoryLen),
		FactoryDetailed: truncate(factoryDetailed, maxFactoryLen),
		PriceFormatted:  truncate(cleanText(listing.RawPrice), maxPriceFormattedLen),
		Currency:        "RUB",
		Gender:          truncate(matchVocab(details.Gender, n.data.GenderVocab), maxGenderLen),
		FragranceGroup:  matchVocab(details.FragranceGroup, n.data.GroupVocab),
		QualityLevel:    truncate(matchVocab(details.Quality, n.data.QualityVocab), maxQualityLen),
		URL:             truncate(n.absoluteURL(listing.URL), maxURLLen),
		IsActive:        true,
	}

	if value, currency, ok := n.prices.Parse(listing.RawPrice); ok {
		record.Price = sql.NullFloat64{Float64: value, Valid: true}
		if currency != "" {
			record.Currency = currency
		}
	}

	return record, nil
}

// resolveArticle applies the article precedence: detail page first, then
// title/URL heuristics, then a deterministic hash-derived code so the field
// is never empty.
func (n *Normalizer) resolveArticle(listing models.RawListing, title models.ClassifiedTitle, details models.DetailAttributes) string {
	if article := cleanText(details.Article); article != "" {
		return article
	}
	if article := cleanText(title.Article); article != "" {
		return article
	}

	for _, pattern := range titleArticlePatterns {
		if match := pattern.FindStringSubmatch(listing.Title); match != nil {
			return match[1]
		}
	}
	if match := urlArticlePattern.FindStringSubmatch(strings.ToUpper(strings.TrimRight(listing.URL, "/"))); match != nil {
		return match[1]
	}

	sum := md5.Sum([]byte(listing.Title + "_" + listing.URL))
	return "GEN" + strings.ToUpper(fmt.Sprintf("%x", sum))[:6]
}

// normalizeFactory snaps a parsed factory onto its canonical spelling.
func (n *Normalizer) normalizeFactory(factory string) string {
	factory = cleanText(factory)
	if factory == "" {
		return ""
	}
	lower := strings.ToLower(factory)
	for _, known := range n.factories {
		if lower == strings.ToLower(known) {
			return known
		}
	}
	for _, known := range n.factories {
		if strings.Contains(lower, strings.ToLower(known)) {
			return known
		}
	}
	return factory
}

// matchVocab maps free text onto a controlled vocabulary by substring.
// Unmatched text is retained cleaned rather than discarded.
func matchVocab(text string, vocab []config.VocabEntry) string {
	cleaned := cleanText(text)
	if cleaned == "" {
		return ""
	}
	lower := strings.ToLower(cleaned)
	for _, entry := range vocab {
		for _, synonym := range entry.Synonyms {
			if strings.Contains(lower, synonym) {
				return entry.Label
			}
		}
	}
	return cleaned
}

func (n *Normalizer) absoluteURL(url string) string {
	if url == "" || strings.HasPrefix(url, "http") {
		return url
	}
	return n.baseURL + "/" + strings.TrimLeft(url, "/")
}

func cleanText(text string) string {
	text = controlChars.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
