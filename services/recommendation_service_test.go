package services

import (
	"database/sql"
	"testing"

	"scentbase/models"
)

type fakeCatalog struct {
	records []models.PerfumeRecord
}

func (f *fakeCatalog) GetAll() ([]models.PerfumeRecord, error) {
	return f.records, nil
}

func priced(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{records: []models.PerfumeRecord{
		{ID: 1, Name: "Floral cheap", Gender: "female", FragranceGroup: "Цветочные", Price: priced(1500)},
		{ID: 2, Name: "Floral pricey", Gender: "female", FragranceGroup: "Floral", Price: priced(3500)},
		{ID: 3, Name: "Woody male", Gender: "male", FragranceGroup: "Древесные", Price: priced(1800)},
		{ID: 4, Name: "Unisex no group", Gender: "unisex", FragranceGroup: "", Price: priced(900)},
		{ID: 5, Name: "No data at all", Gender: "", FragranceGroup: "Восточные"},
	}}
}

func newTestRecommender(catalog CatalogReader, opts RecommendationOptions) *RecommendationService {
	return NewRecommendationService(catalog, NewScoringService(), opts)
}

func TestRecommendGenderFilter(t *testing.T) {
	s := newTestRecommender(testCatalog(), RecommendationOptions{BudgetThreshold: 2000})

	result, err := s.Recommend(models.QuizAnswerSet{"gender": {"female"}})
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range result.Perfumes {
		if r.Gender == "male" {
			t.Errorf("male record %q passed a female filter", r.Name)
		}
	}
	// Unset and unisex genders pass.
	if !containsID(result.Perfumes, 4) || !containsID(result.Perfumes, 5) {
		t.Errorf("records with unset/unisex gender were excluded: %v", ids(result.Perfumes))
	}
}

func TestRecommendBudgetFilter(t *testing.T) {
	s := newTestRecommender(testCatalog(), RecommendationOptions{BudgetThreshold: 2000})

	result, err := s.Recommend(models.QuizAnswerSet{"budget": {"budget"}})
	if err != nil {
		t.Fatal(err)
	}

	if containsID(result.Perfumes, 2) {
		t.Error("record above the budget threshold was returned")
	}
	// Unknown price is never excluded by a budget filter.
	if !containsID(result.Perfumes, 5) {
		t.Error("record with unknown price was excluded by the budget filter")
	}

	// Other tiers do not filter on price.
	result, err = s.Recommend(models.QuizAnswerSet{"budget": {"premium"}})
	if err != nil {
		t.Fatal(err)
	}
	if result.Matched != 5 {
		t.Errorf("premium tier matched %d records, want all 5", result.Matched)
	}
}

func TestRecommendFamilyFilter(t *testing.T) {
	s := newTestRecommender(testCatalog(), RecommendationOptions{BudgetThreshold: 2000})

	result, err := s.Recommend(models.QuizAnswerSet{"families": {"floral"}})
	if err != nil {
		t.Fatal(err)
	}

	if result.Matched != 2 {
		t.Fatalf("matched %d records, want the 2 floral ones (got %v)", result.Matched, ids(result.Perfumes))
	}
	for _, id := range []int{1, 2} {
		if !containsID(result.Perfumes[:result.Matched], id) {
			t.Errorf("floral record %d missing from matches", id)
		}
	}
}

// An empty fragrance group passes only when no family filter is active.
func TestRecommendEmptyGroupSemantics(t *testing.T) {
	s := newTestRecommender(testCatalog(), RecommendationOptions{MinResults: 1, BudgetThreshold: 2000})

	result, err := s.Recommend(models.QuizAnswerSet{"families": {"woody"}})
	if err != nil {
		t.Fatal(err)
	}
	if result.Matched != 1 || result.Perfumes[0].ID != 3 {
		t.Errorf("woody filter matched %v, want only record 3", ids(result.Perfumes[:result.Matched]))
	}

	result, err = s.Recommend(models.QuizAnswerSet{})
	if err != nil {
		t.Fatal(err)
	}
	if !containsID(result.Perfumes, 4) {
		t.Error("record with empty group excluded despite no family filter")
	}
}

func TestRecommendBackfillToMinimum(t *testing.T) {
	s := newTestRecommender(testCatalog(), RecommendationOptions{MinResults: 4, BudgetThreshold: 2000})

	result, err := s.Recommend(models.QuizAnswerSet{"families": {"woody"}})
	if err != nil {
		t.Fatal(err)
	}

	if result.Matched != 1 {
		t.Errorf("matched = %d, want 1", result.Matched)
	}
	if len(result.Perfumes) != 4 {
		t.Errorf("backfilled result has %d records, want 4", len(result.Perfumes))
	}
	// The genuine match stays first.
	if result.Perfumes[0].ID != 3 {
		t.Errorf("first record = %d, want the real match first", result.Perfumes[0].ID)
	}
}

func TestRecommendCapsByTruncation(t *testing.T) {
	s := newTestRecommender(testCatalog(), RecommendationOptions{MaxResults: 2, BudgetThreshold: 2000})

	result, err := s.Recommend(models.QuizAnswerSet{})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Perfumes) != 2 {
		t.Fatalf("got %d records, want cap of 2", len(result.Perfumes))
	}
	// Truncation keeps catalog order, no ranking.
	if result.Perfumes[0].ID != 1 || result.Perfumes[1].ID != 2 {
		t.Errorf("cap did not preserve catalog order: %v", ids(result.Perfumes))
	}
	if result.Matched != 5 {
		t.Errorf("matched = %d, want pre-cap count 5", result.Matched)
	}
}

func containsID(records []models.PerfumeRecord, id int) bool {
	for _, r := range records {
		if r.ID == id {
			return true
		}
	}
	return false
}

func ids(records []models.PerfumeRecord) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
