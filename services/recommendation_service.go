package services

import (
	"fmt"
	"strings"

	"scentbase/models"
)

// familyKeywords are the substrings (Russian and English) that place a
// record's fragrance_group into a family bucket. Matching is lowercase
// substring, same as the vocabulary mapping in the normalizer.
var familyKeywords = map[models.Family][]string{
	models.FamilyFloral:   {"цветочн", "floral", "роза", "rose", "жасмин", "jasmine"},
	models.FamilyOriental: {"восточн", "oriental", "амбр", "amber", "ваниль", "vanilla", "мускус", "musk", "гурман", "gourmand"},
	models.FamilyWoody:    {"древесн", "woody", "сандал", "sandal", "кедр", "cedar", "шипр", "chypre", "фужер", "fougere"},
	models.FamilyFresh:    {"свеж", "fresh", "цитрус", "citrus", "морск", "aquatic", "зелен", "green"},
}

// CatalogReader is the read surface the filter needs from the store.
type CatalogReader interface {
	GetAll() ([]models.PerfumeRecord, error)
}

// RecommendationOptions bound the result set.
type RecommendationOptions struct {
	MaxResults      int
	MinResults      int
	BudgetThreshold float64
}

// RecommendationResult is the contract the downstream prompt-assembly
// layer consumes: the score profile plus the narrowed catalog slice.
type RecommendationResult struct {
	Profile  models.FamilyScoreProfile `json:"profile"`
	Matched  int                       `json:"matched"`
	Perfumes []models.PerfumeRecord    `json:"perfumes"`
}

// RecommendationService narrows the catalog using quiz answers: gender and
// budget predicates plus a fragrance-family keyword filter, capped by
// truncation in catalog order.
type RecommendationService struct {
	catalog CatalogReader
	scoring *ScoringService
	options RecommendationOptions
}

func NewRecommendationService(catalog CatalogReader, scoring *ScoringService, options RecommendationOptions) *RecommendationService {
	if options.MaxResults <= 0 {
		options.MaxResults = 500
	}
	return &RecommendationService{catalog: catalog, scoring: scoring, options: options}
}

// Recommend scores the answers and filters the catalog. Records with
// missing data pass the predicates that need that data: absence of data
// never excludes a record.
func (s *RecommendationService) Recommend(answers models.QuizAnswerSet) (*RecommendationResult, error) {
	records, err := s.catalog.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %v", err)
	}

	profile := s.scoring.Score(answers)
	gender := strings.ToLower(answers.First("gender"))
	budget := strings.ToLower(answers.First("budget"))
	families := selectedFamilies(answers["families"])

	var matched []models.PerfumeRecord
	for _, record := range records {
		if !s.genderMatches(record, gender) {
			continue
		}
		if !s.budgetMatches(record, budget) {
			continue
		}
		if !familyMatches(record, families) {
			continue
		}
		matched = append(matched, record)
	}

	result := &RecommendationResult{Profile: profile, Matched: len(matched)}
	result.Perfumes = s.backfill(matched, records)
	return result, nil
}

// backfill tops the matched slice up to the configured minimum with
// unfiltered records, then caps to the maximum by truncation.
func (s *RecommendationService) backfill(matched, all []models.PerfumeRecord) []models.PerfumeRecord {
	if len(matched) < s.options.MinResults {
		seen := make(map[int]bool, len(matched))
		for _, record := range matched {
			seen[record.ID] = true
		}
		for _, record := range all {
			if len(matched) >= s.options.MinResults {
				break
			}
			if !seen[record.ID] {
				matched = append(matched, record)
			}
		}
	}

	if len(matched) > s.options.MaxResults {
		matched = matched[:s.options.MaxResults]
	}
	return matched
}

func (s *RecommendationService) genderMatches(record models.PerfumeRecord, gender string) bool {
	if gender == "" || gender == "any" {
		return true
	}
	recordGender := strings.ToLower(record.Gender)
	return recordGender == "" || recordGender == "unisex" || recordGender == gender
}

// budgetMatches filters only on the cheapest tier; records without a
// numeric price always pass.
func (s *RecommendationService) budgetMatches(record models.PerfumeRecord, budget string) bool {
	if budget != "budget" {
		return true
	}
	if !record.HasPrice() {
		return true
	}
	return record.GetPrice() < s.options.BudgetThreshold
}

func familyMatches(record models.PerfumeRecord, families []models.Family) bool {
	if len(families) == 0 {
		return true
	}
	group := strings.ToLower(record.FragranceGroup)
	if group == "" {
		return false
	}
	for _, family := range families {
		for _, keyword := range familyKeywords[family] {
			if strings.Contains(group, keyword) {
				return true
			}
		}
	}
	return false
}

// selectedFamilies maps the quiz's family options onto the four buckets,
// reusing the scoring weight table so both stages agree on the mapping.
func selectedFamilies(options []string) []models.Family {
	seen := make(map[models.Family]bool, 4)
	var families []models.Family
	for _, option := range options {
		for _, family := range answerWeights["families"][strings.ToLower(option)] {
			if !seen[family] {
				seen[family] = true
				families = append(families, family)
			}
		}
	}
	return families
}
