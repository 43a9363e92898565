package scraper

import (
	"strings"
	"testing"

	"scentbase/config"
	"scentbase/models"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(config.DefaultCatalogData(), NewPriceParser(), "https://aroma-euro.ru")
}

func TestNormalizeBasicRecord(t *testing.T) {
	n := newTestNormalizer()

	listing := models.RawListing{
		Title:    "Tom Ford Black Orchid, Givaudan Premium",
		URL:      "/perfume/tom-ford-black-orchid/",
		RawPrice: "1 200 руб.",
	}
	title := models.ClassifiedTitle{Brand: "Tom Ford", Name: "Black Orchid", Factory: "Givaudan Premium"}
	details := models.DetailAttributes{
		Article:        "TF-1001",
		Quality:        "Люкс",
		Gender:         "Женский",
		FragranceGroup: "Цветочные",
	}

	record, err := n.Normalize(listing, title, details)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	if record.Article != "TF-1001" {
		t.Errorf("article = %q, want TF-1001", record.Article)
	}
	if record.UniqueKey != models.IdentityKey("Tom Ford", "Black Orchid", "Givaudan Premium") {
		t.Errorf("unexpected unique key %q", record.UniqueKey)
	}
	if !record.HasPrice() || record.GetPrice() != 1200 {
		t.Errorf("price = %v, want 1200", record.Price)
	}
	if record.Currency != "RUB" {
		t.Errorf("currency = %q, want RUB", record.Currency)
	}
	if record.Gender != "female" {
		t.Errorf("gender = %q, want female", record.Gender)
	}
	if record.FragranceGroup != "Floral" {
		t.Errorf("fragrance group = %q, want Floral", record.FragranceGroup)
	}
	if record.QualityLevel != "Lux" {
		t.Errorf("quality = %q, want Lux", record.QualityLevel)
	}
	if record.URL != "https://aroma-euro.ru/perfume/tom-ford-black-orchid/" {
		t.Errorf("url = %q", record.URL)
	}
	if !record.IsActive {
		t.Error("record is not active")
	}
}

// Running the normalizer twice on the same inputs yields identical records.
func TestNormalizeIdempotent(t *testing.T) {
	n := newTestNormalizer()

	listing := models.RawListing{Title: "Chanel No. 5, SELUZ", URL: "/perfume/chanel-no-5/", RawPrice: "990 руб"}
	title := models.ClassifiedTitle{Brand: "Chanel", Name: "No. 5", Factory: "SELUZ"}
	details := models.DetailAttributes{Gender: "жен"}

	first, err := n.Normalize(listing, title, details)
	if err != nil {
		t.Fatal(err)
	}
	second, err := n.Normalize(listing, title, details)
	if err != nil {
		t.Fatal(err)
	}

	if *first != *second {
		t.Errorf("normalization is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestNormalizeArticlePrecedence(t *testing.T) {
	n := newTestNormalizer()

	listing := models.RawListing{Title: "Dior Sauvage AB1234", URL: "/perfume/dior-sauvage/"}
	title := models.ClassifiedTitle{Brand: "Dior", Name: "Sauvage"}

	// Detail-page article wins over anything parsed from the title.
	record, err := n.Normalize(listing, title, models.DetailAttributes{Article: "D-77"})
	if err != nil {
		t.Fatal(err)
	}
	if record.Article != "D-77" {
		t.Errorf("article = %q, want detail-page value D-77", record.Article)
	}

	// Without detail data the title heuristic applies.
	record, err = n.Normalize(listing, title, models.DetailAttributes{})
	if err != nil {
		t.Fatal(err)
	}
	if record.Article != "AB1234" {
		t.Errorf("article = %q, want title-derived AB1234", record.Article)
	}
}

func TestNormalizeArticleFallbackIsDeterministic(t *testing.T) {
	n := newTestNormalizer()

	listing := models.RawListing{Title: "Роза", URL: "/perfume/roza_classic/"}
	title := models.ClassifiedTitle{Name: "Роза"}

	first, err := n.Normalize(listing, title, models.DetailAttributes{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := n.Normalize(listing, title, models.DetailAttributes{})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(first.Article, "GEN") || len(first.Article) != 9 {
		t.Errorf("fallback article %q does not match GEN-prefixed shape", first.Article)
	}
	if first.Article != second.Article {
		t.Errorf("fallback article is not deterministic: %q vs %q", first.Article, second.Article)
	}
}

// Longer factory names must win the canonical snap over their prefixes,
// and case variants snap to one spelling.
func TestNormalizeFactoryLongestFirst(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		factory string
		want    string
	}{
		{"Givaudan Premium", "Givaudan Premium"},
		{"givaudan superlux", "Givaudan SuperLux"},
		{"Givaudan", "Givaudan"},
		{"seluz", "SELUZ"},
		{"Неизвестная фабрика", "Неизвестная фабрика"},
	}

	for _, tt := range tests {
		listing := models.RawListing{Title: "Dior Sauvage", URL: "/perfume/dior-sauvage/"}
		title := models.ClassifiedTitle{Brand: "Dior", Name: "Sauvage", Factory: tt.factory}

		record, err := n.Normalize(listing, title, models.DetailAttributes{})
		if err != nil {
			t.Fatal(err)
		}
		if record.Factory != tt.want {
			t.Errorf("factory %q snapped to %q, want %q", tt.factory, record.Factory, tt.want)
		}
	}
}

// The persisted unique key must agree with the key the deduplicator derives
// from the same classified title, or dedup and storage disagree on identity.
func TestNormalizeKeyAgreesWithDeduplicator(t *testing.T) {
	n := newTestNormalizer()
	d := NewDeduplicator()

	title := models.ClassifiedTitle{Brand: "Tom Ford", Name: "Black Orchid", Factory: "Givaudan Premium"}
	listing := models.RawListing{Title: "Tom Ford Black Orchid, Givaudan Premium", URL: "/perfume/tf/"}

	dedupKey, _ := d.Observe(title, listing.Title)
	record, err := n.Normalize(listing, title, models.DetailAttributes{})
	if err != nil {
		t.Fatal(err)
	}

	if record.UniqueKey != dedupKey {
		t.Errorf("stored key %q disagrees with dedup key %q", record.UniqueKey, dedupKey)
	}
}

func TestNormalizeRejectsEmptyName(t *testing.T) {
	n := newTestNormalizer()

	listing := models.RawListing{Title: "???", URL: "/perfume/x/"}
	if _, err := n.Normalize(listing, models.ClassifiedTitle{Name: "  "}, models.DetailAttributes{}); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestNormalizeUnmatchedVocabRetained(t *testing.T) {
	n := newTestNormalizer()

	listing := models.RawListing{Title: "Gucci Bloom", URL: "/perfume/gucci-bloom/"}
	title := models.ClassifiedTitle{Brand: "Gucci", Name: "Bloom"}
	details := models.DetailAttributes{FragranceGroup: "Кожаные  ноты"}

	record, err := n.Normalize(listing, title, details)
	if err != nil {
		t.Fatal(err)
	}
	if record.FragranceGroup != "Кожаные ноты" {
		t.Errorf("unmatched group = %q, want cleaned original text", record.FragranceGroup)
	}
}

func TestNormalizeTruncatesLongFields(t *testing.T) {
	n := newTestNormalizer()

	longName := strings.Repeat("a", 300)
	listing := models.RawListing{Title: longName, URL: "/perfume/long/"}
	title := models.ClassifiedTitle{Name: longName}

	record, err := n.Normalize(listing, title, models.DetailAttributes{})
	if err != nil {
		t.Fatal(err)
	}
	if len(record.Name) != maxNameLen {
		t.Errorf("name length = %d, want %d", len(record.Name), maxNameLen)
	}
}
