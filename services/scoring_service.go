package services

import (
	"math"

	"scentbase/models"
)

// answerWeights tags each known (question, option) pair with the fragrance
// families it signals. An option may feed several families; unknown
// questions and options contribute nothing.
var answerWeights = map[string]map[string][]models.Family{
	"families": {
		"floral":   {models.FamilyFloral},
		"citrus":   {models.FamilyFresh},
		"woody":    {models.FamilyWoody},
		"fresh":    {models.FamilyFresh},
		"oriental": {models.FamilyOriental},
		"gourmand": {models.FamilyOriental},
	},
	"season": {
		"spring": {models.FamilyFloral, models.FamilyFresh},
		"summer": {models.FamilyFresh},
		"autumn": {models.FamilyOriental, models.FamilyWoody},
		"winter": {models.FamilyOriental},
	},
	"intensity": {
		"light":    {models.FamilyFresh},
		"moderate": {models.FamilyFloral},
		"strong":   {models.FamilyOriental},
	},
	"occasion": {
		"daily":   {models.FamilyFresh},
		"work":    {models.FamilyWoody},
		"evening": {models.FamilyOriental},
		"special": {models.FamilyFloral},
	},
	"time_of_day": {
		"day":   {models.FamilyFresh},
		"night": {models.FamilyOriental},
	},
	"lifestyle": {
		"active":   {models.FamilyFresh},
		"romantic": {models.FamilyFloral},
		"business": {models.FamilyWoody},
		"creative": {models.FamilyOriental},
	},
}

// ScoringService converts quiz answers into fragrance-family percentages.
// It is a pure function over the static weight table; no state, no I/O.
type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// Score tallies family tags across every selected option and converts the
// tallies to percentages. When nothing matched, all percentages are zero
// and the dominant family defaults to fresh.
func (s *ScoringService) Score(answers models.QuizAnswerSet) models.FamilyScoreProfile {
	counts := make(map[models.Family]int, 4)
	total := 0

	for question, options := range answers {
		weights, ok := answerWeights[question]
		if !ok {
			continue
		}
		for _, option := range options {
			for _, family := range weights[option] {
				counts[family]++
				total++
			}
		}
	}

	profile := models.FamilyScoreProfile{Dominant: models.FamilyFresh}
	if total == 0 {
		return profile
	}

	profile.Floral = percentage(counts[models.FamilyFloral], total)
	profile.Oriental = percentage(counts[models.FamilyOriental], total)
	profile.Woody = percentage(counts[models.FamilyWoody], total)
	profile.Fresh = percentage(counts[models.FamilyFresh], total)
	profile.Dominant = dominantFamily(profile)
	return profile
}

func percentage(count, total int) int {
	return int(math.Round(100 * float64(count) / float64(total)))
}

// dominantFamily is the arg-max percentage; ties resolve by the fixed
// family priority order so the result is deterministic.
func dominantFamily(profile models.FamilyScoreProfile) models.Family {
	best := models.FamilyPriority[0]
	for _, family := range models.FamilyPriority[1:] {
		if profile.Score(family) > profile.Score(best) {
			best = family
		}
	}
	return best
}
