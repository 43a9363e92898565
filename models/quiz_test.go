package models

import (
	"encoding/json"
	"testing"
)

func TestQuizAnswerSetUnmarshal(t *testing.T) {
	payload := `{
		"gender": "female",
		"families": ["floral", "citrus"],
		"budget": "any"
	}`

	var answers QuizAnswerSet
	if err := json.Unmarshal([]byte(payload), &answers); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if got := answers.First("gender"); got != "female" {
		t.Errorf("First(gender) = %q", got)
	}
	if len(answers["families"]) != 2 || answers["families"][1] != "citrus" {
		t.Errorf("families = %v", answers["families"])
	}
	if got := answers.First("missing"); got != "" {
		t.Errorf("First(missing) = %q, want empty", got)
	}
}

func TestQuizAnswerSetRejectsWrongShapes(t *testing.T) {
	bad := []string{
		`{"gender": 5}`,
		`{"families": [1, 2]}`,
		`{"families": {"nested": true}}`,
	}

	for _, payload := range bad {
		var answers QuizAnswerSet
		if err := json.Unmarshal([]byte(payload), &answers); err == nil {
			t.Errorf("unmarshal(%s) succeeded, want error", payload)
		}
	}
}
