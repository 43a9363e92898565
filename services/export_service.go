package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"scentbase/models"
	"scentbase/scraper"
)

// CatalogWriter is the write surface the importer needs from the store.
type CatalogWriter interface {
	Upsert(record *models.PerfumeRecord) (bool, error)
}

// ExportService produces and consumes the bulk catalog snapshot, the JSON
// interchange format the prompt-assembly layer reads.
type ExportService struct {
	catalog    CatalogReader
	store      CatalogWriter
	prices     *scraper.PriceParser
	catalogURL string
}

func NewExportService(catalog CatalogReader, store CatalogWriter, catalogURL string) *ExportService {
	return &ExportService{
		catalog:    catalog,
		store:      store,
		prices:     scraper.NewPriceParser(),
		catalogURL: catalogURL,
	}
}

// Export writes the full active catalog to path as a snapshot document and
// returns the number of exported listings.
func (s *ExportService) Export(path string) (int, error) {
	records, err := s.catalog.GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to load catalog for export: %v", err)
	}

	snapshot := models.CatalogSnapshot{
		Metadata: models.ExportMetadata{
			Source:     "aroma-euro.ru",
			CatalogURL: s.catalogURL,
			ExportedAt: time.Now(),
			TotalCount: len(records),
		},
		Perfumes: make([]models.ExportedListing, 0, len(records)),
	}
	for i := range records {
		snapshot.Perfumes = append(snapshot.Perfumes, toExported(&records[i]))
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to encode snapshot: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write snapshot: %v", err)
	}

	log.Printf("Exported %d perfumes to %s", len(records), path)
	return len(records), nil
}

// Import loads a snapshot file and upserts every listing it carries.
// Listings without a usable name are skipped and counted, same as in the
// live pipeline.
func (s *ExportService) Import(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot: %v", err)
	}

	var snapshot models.CatalogSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return 0, fmt.Errorf("failed to decode snapshot: %v", err)
	}

	imported := 0
	skipped := 0
	for i := range snapshot.Perfumes {
		record, err := s.fromExported(&snapshot.Perfumes[i])
		if err != nil {
			log.Printf("Skipping snapshot entry: %v", err)
			skipped++
			continue
		}
		if _, err := s.store.Upsert(record); err != nil {
			log.Printf("Failed to import %q: %v", record.FullTitle, err)
			skipped++
			continue
		}
		imported++
	}

	log.Printf("Imported %d perfumes from %s (%d skipped)", imported, path, skipped)
	return imported, nil
}

func toExported(record *models.PerfumeRecord) models.ExportedListing {
	return models.ExportedListing{
		FullTitle: record.FullTitle,
		Brand:     record.Brand,
		Name:      record.Name,
		Factory:   record.Factory,
		Article:   record.Article,
		URL:       record.URL,
		Price:     record.PriceFormatted,
		UniqueKey: record.UniqueKey,
		Details: models.ExportedDetails{
			Article:         record.Article,
			Quality:         record.QualityLevel,
			BrandDetailed:   record.Brand,
			Gender:          record.Gender,
			FragranceGroup:  record.FragranceGroup,
			FactoryDetailed: record.FactoryDetailed,
		},
	}
}

func (s *ExportService) fromExported(listing *models.ExportedListing) (*models.PerfumeRecord, error) {
	if listing.Name == "" {
		return nil, fmt.Errorf("snapshot entry %q has no name", listing.FullTitle)
	}

	article := listing.Details.Article
	if article == "" {
		article = listing.Article
	}

	record := &models.PerfumeRecord{
		Article:         article,
		UniqueKey:       models.IdentityKey(listing.Brand, listing.Name, listing.Factory),
		Brand:           listing.Brand,
		Name:            listing.Name,
		FullTitle:       listing.FullTitle,
		Factory:         listing.Factory,
		FactoryDetailed: listing.Details.FactoryDetailed,
		PriceFormatted:  listing.Price,
		Currency:        "RUB",
		Gender:          listing.Details.Gender,
		FragranceGroup:  listing.Details.FragranceGroup,
		QualityLevel:    listing.Details.Quality,
		URL:             listing.URL,
		IsActive:        true,
	}

	if value, currency, ok := s.prices.Parse(listing.Price); ok {
		record.Price = sql.NullFloat64{Float64: value, Valid: true}
		if currency != "" {
			record.Currency = currency
		}
	}

	return record, nil
}
