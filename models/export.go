package models

import "time"

// ExportedDetails mirrors the nested `details` object of the catalog
// snapshot format.
type ExportedDetails struct {
	Article         string `json:"article"`
	Quality         string `json:"quality"`
	BrandDetailed   string `json:"brand_detailed"`
	Gender          string `json:"gender"`
	FragranceGroup  string `json:"fragrance_group"`
	FactoryDetailed string `json:"factory_detailed"`
}

// ExportedListing is one entry of the bulk catalog snapshot, the external
// interchange format shared with the prompt-assembly layer.
type ExportedListing struct {
	FullTitle string          `json:"full_title"`
	Brand     string          `json:"brand"`
	Name      string          `json:"name"`
	Factory   string          `json:"factory"`
	Article   string          `json:"article"`
	URL       string          `json:"url"`
	Price     string          `json:"price"`
	UniqueKey string          `json:"unique_key"`
	Details   ExportedDetails `json:"details"`
}

// ExportMetadata describes when and from where a snapshot was produced.
type ExportMetadata struct {
	Source     string    `json:"source"`
	CatalogURL string    `json:"catalog_url"`
	ExportedAt time.Time `json:"exported_at"`
	TotalCount int       `json:"total_count"`
}

// CatalogSnapshot is the full bulk export document.
type CatalogSnapshot struct {
	Metadata ExportMetadata    `json:"metadata"`
	Perfumes []ExportedListing `json:"perfumes"`
}
