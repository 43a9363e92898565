package services

import (
	"path/filepath"
	"testing"

	"scentbase/models"
)

type fakeWriter struct {
	upserted []*models.PerfumeRecord
}

func (f *fakeWriter) Upsert(record *models.PerfumeRecord) (bool, error) {
	f.upserted = append(f.upserted, record)
	return true, nil
}

func TestExportImportRoundTrip(t *testing.T) {
	catalog := &fakeCatalog{records: []models.PerfumeRecord{
		{
			ID: 1, Article: "TF-1001", UniqueKey: models.IdentityKey("Tom Ford", "Black Orchid", "Givaudan"),
			Brand: "Tom Ford", Name: "Black Orchid", FullTitle: "Tom Ford Black Orchid, Givaudan",
			Factory: "Givaudan", Price: priced(1200), PriceFormatted: "1200 руб.", Currency: "RUB",
			Gender: "female", FragranceGroup: "Floral", QualityLevel: "Lux",
			URL: "https://aroma-euro.ru/perfume/tom-ford-black-orchid/", IsActive: true,
		},
		{
			ID: 2, Article: "GEN1A2B3C", UniqueKey: models.IdentityKey("", "Роза", ""),
			Name: "Роза", FullTitle: "Роза", Currency: "RUB",
			URL: "https://aroma-euro.ru/perfume/roza/", IsActive: true,
		},
	}}

	writer := &fakeWriter{}
	s := NewExportService(catalog, writer, "https://aroma-euro.ru/perfume/")
	path := filepath.Join(t.TempDir(), "snapshot.json")

	exported, err := s.Export(path)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if exported != 2 {
		t.Fatalf("exported %d, want 2", exported)
	}

	imported, err := s.Import(path)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if imported != 2 {
		t.Fatalf("imported %d, want 2", imported)
	}

	first := writer.upserted[0]
	if first.UniqueKey != catalog.records[0].UniqueKey {
		t.Errorf("identity key changed over round trip: %q vs %q", first.UniqueKey, catalog.records[0].UniqueKey)
	}
	if first.Article != "TF-1001" || first.Brand != "Tom Ford" || first.Factory != "Givaudan" {
		t.Errorf("fields lost over round trip: %+v", first)
	}
	if !first.HasPrice() || first.GetPrice() != 1200 {
		t.Errorf("price lost over round trip: %v", first.Price)
	}
	if first.Gender != "female" || first.FragranceGroup != "Floral" || first.QualityLevel != "Lux" {
		t.Errorf("detail fields lost over round trip: %+v", first)
	}
}

func TestImportSkipsNamelessEntries(t *testing.T) {
	catalog := &fakeCatalog{records: []models.PerfumeRecord{
		{ID: 1, Name: "", FullTitle: "broken", Article: "X1"},
		{ID: 2, Name: "Ok", FullTitle: "Ok", Article: "X2", URL: "https://example.com/ok/"},
	}}

	writer := &fakeWriter{}
	s := NewExportService(catalog, writer, "https://example.com/")
	path := filepath.Join(t.TempDir(), "snapshot.json")

	if _, err := s.Export(path); err != nil {
		t.Fatal(err)
	}
	imported, err := s.Import(path)
	if err != nil {
		t.Fatal(err)
	}
	if imported != 1 || len(writer.upserted) != 1 {
		t.Errorf("imported %d entries, want the 1 with a name", imported)
	}
}
