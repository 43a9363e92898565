package models

import (
	"encoding/json"
	"fmt"
)

// Family is one of the four broad scent buckets used for scoring and
// filtering.
type Family string

const (
	FamilyFloral   Family = "floral"
	FamilyOriental Family = "oriental"
	FamilyWoody    Family = "woody"
	FamilyFresh    Family = "fresh"
)

// FamilyPriority is the fixed tie-break order for the dominant family.
var FamilyPriority = []Family{FamilyFloral, FamilyOriental, FamilyWoody, FamilyFresh}

// QuizAnswerSet maps a question key to the option values the user selected.
// Single-select questions carry one value, multi-select several.
type QuizAnswerSet map[string][]string

// UnmarshalJSON accepts both `"value"` and `["a", "b"]` per question, which
// is the shape the consulting front-end sends.
func (q *QuizAnswerSet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(QuizAnswerSet, len(raw))
	for key, val := range raw {
		var single string
		if err := json.Unmarshal(val, &single); err == nil {
			out[key] = []string{single}
			continue
		}
		var multi []string
		if err := json.Unmarshal(val, &multi); err != nil {
			return fmt.Errorf("answer %q must be a string or a list of strings", key)
		}
		out[key] = multi
	}
	*q = out
	return nil
}

// First returns the first selected value for a question, or "".
func (q QuizAnswerSet) First(key string) string {
	if vals := q[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// FamilyScoreProfile holds the percentage scores per fragrance family.
// Percentages sum to 100 (modulo rounding) when any keyword matched,
// otherwise all four are zero.
type FamilyScoreProfile struct {
	Floral   int    `json:"floral"`
	Oriental int    `json:"oriental"`
	Woody    int    `json:"woody"`
	Fresh    int    `json:"fresh"`
	Dominant Family `json:"dominant"`
}

// Score returns the percentage for the given family.
func (p FamilyScoreProfile) Score(f Family) int {
	switch f {
	case FamilyFloral:
		return p.Floral
	case FamilyOriental:
		return p.Oriental
	case FamilyWoody:
		return p.Woody
	case FamilyFresh:
		return p.Fresh
	}
	return 0
}
