package scraper

import (
	"log"

	"scentbase/models"
)

// Deduplicator suppresses repeated listings across catalog pages using the
// identity key derived from the classified title. It must run before the
// detail-extraction stage so duplicate detail fetches never happen.
type Deduplicator struct {
	seen       map[string]string
	duplicates int
}

// NewDeduplicator creates an empty Deduplicator for one pipeline run.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]string)}
}

// Observe returns the identity key for a classified title and whether this
// is its first occurrence in the run. Repeats are traced, not errors.
func (d *Deduplicator) Observe(title models.ClassifiedTitle, fullTitle string) (string, bool) {
	key := models.IdentityKey(title.Brand, title.Name, title.Factory)
	if first, exists := d.seen[key]; exists {
		d.duplicates++
		log.Printf("DEBUG: skipping duplicate listing %q (first seen as %q)", fullTitle, first)
		return key, false
	}
	d.seen[key] = fullTitle
	return key, true
}

// Duplicates returns how many repeats were suppressed so far.
func (d *Deduplicator) Duplicates() int {
	return d.duplicates
}

// Unique returns how many distinct identity keys were observed.
func (d *Deduplicator) Unique() int {
	return len(d.seen)
}
