package models

import (
	"database/sql"
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// RawListing is what the listing extractor pulls off a catalog page before
// any classification happens. It lives only for the duration of a page parse.
type RawListing struct {
	Title    string
	URL      string
	RawPrice string
}

// ClassifiedTitle is the result of splitting a raw title into its parts.
// Name is always non-empty; everything else is best effort.
type ClassifiedTitle struct {
	Brand   string
	Name    string
	Factory string
	Article string
}

// DetailAttributes holds the structured attributes scraped from a product
// detail page. All fields are optional; a page without an attributes block
// yields the zero value.
type DetailAttributes struct {
	Article         string
	Quality         string
	BrandDetailed   string
	Gender          string
	FragranceGroup  string
	FactoryDetailed string
}

// IsEmpty reports whether no attribute was found on the detail page.
func (d DetailAttributes) IsEmpty() bool {
	return d == DetailAttributes{}
}

// PerfumeRecord is the canonical persisted record for one product.
type PerfumeRecord struct {
	ID              int             `json:"id"`
	Article         string          `json:"article"`
	UniqueKey       string          `json:"unique_key"`
	Brand           string          `json:"brand"`
	Name            string          `json:"name"`
	FullTitle       string          `json:"full_title"`
	Factory         string          `json:"factory"`
	FactoryDetailed string          `json:"factory_detailed"`
	Price           sql.NullFloat64 `json:"price"`
	PriceFormatted  string          `json:"price_formatted"`
	Currency        string          `json:"currency"`
	Gender          string          `json:"gender"`
	FragranceGroup  string          `json:"fragrance_group"`
	QualityLevel    string          `json:"quality_level"`
	URL             string          `json:"url"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// HasPrice reports whether a numeric price was extracted for this record.
func (p *PerfumeRecord) HasPrice() bool {
	return p.Price.Valid
}

// GetPrice returns the numeric price, or 0 when none was extracted.
func (p *PerfumeRecord) GetPrice() float64 {
	if p.Price.Valid {
		return p.Price.Float64
	}
	return 0
}

// MarshalJSON renders the nullable price as a plain number or null.
func (p *PerfumeRecord) MarshalJSON() ([]byte, error) {
	type Alias PerfumeRecord
	return json.Marshal(&struct {
		*Alias
		Price *float64 `json:"price"`
	}{
		Alias: (*Alias)(p),
		Price: p.pricePtr(),
	})
}

func (p *PerfumeRecord) pricePtr() *float64 {
	if p.Price.Valid {
		v := p.Price.Float64
		return &v
	}
	return nil
}

var keyCleaner = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

// IdentityKey derives the stable dedup key for a product. Two listings with
// the same normalized brand, name and factory are the same product.
func IdentityKey(brand, name, factory string) string {
	return normalizeKeyPart(brand) + "|" + normalizeKeyPart(name) + "|" + normalizeKeyPart(factory)
}

func normalizeKeyPart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = keyCleaner.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// RunStats aggregates the outcome of one pipeline run.
type RunStats struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Pages      int       `json:"pages"`
	Listings   int       `json:"listings"`
	Duplicates int       `json:"duplicates"`
	Fetched    int       `json:"fetched"`
	Skipped    int       `json:"skipped"`
	Upserted   int       `json:"upserted"`
	Created    int       `json:"created"`
	Failed     int       `json:"failed"`
}
