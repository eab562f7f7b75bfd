package services

import (
	"testing"

	"github.com/femi-tobi/dandeb-schools/app/models"
)

func fptr(v float64) *float64 { return &v }

func gateEntry(subject, grade string, exam float64) *models.Result {
	return &models.Result{Subject: subject, Grade: grade, Exam: fptr(exam)}
}

func passingTerms(cfg PromotionConfig) map[string][]*models.Result {
	byTerm := make(map[string][]*models.Result)
	for _, term := range cfg.Terms {
		byTerm[term] = []*models.Result{
			gateEntry("English", "B2", 60),
			gateEntry("Mathematics", "C6", 55),
			gateEntry("Basic Science", "F9", 10),
		}
	}
	return byTerm
}

func TestCheckGatesPass(t *testing.T) {
	cfg := DefaultPromotionConfig()
	if outcome := cfg.checkGates(passingTerms(cfg)); outcome != nil {
		t.Errorf("expected pass, got refusal: %s", outcome.Reason)
	}
}

func TestCheckGatesRefusals(t *testing.T) {
	cfg := DefaultPromotionConfig()
	tests := []struct {
		name   string
		mutate func(map[string][]*models.Result)
	}{
		{
			"failing grade in a gate subject",
			func(m map[string][]*models.Result) {
				m["2nd Term"][0] = gateEntry("English", "F9", 60)
			},
		},
		{
			"exam score below pass mark despite passing grade",
			func(m map[string][]*models.Result) {
				m["3rd Term"][1] = gateEntry("Mathematics", "C6", 49)
			},
		},
		{
			"gate subject missing in one term",
			func(m map[string][]*models.Result) {
				m["1st Term"] = m["1st Term"][1:]
			},
		},
		{
			"no exam score recorded",
			func(m map[string][]*models.Result) {
				m["1st Term"][0] = &models.Result{Subject: "English", Grade: "B2"}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			byTerm := passingTerms(cfg)
			tt.mutate(byTerm)
			outcome := cfg.checkGates(byTerm)
			if outcome == nil {
				t.Fatal("expected refusal, got pass")
			}
			if outcome.Promoted {
				t.Error("refusal must not be marked promoted")
			}
			if outcome.Reason == "" {
				t.Error("refusal must carry a reason")
			}
		})
	}
}

func TestCheckGatesIgnoresNonGateSubjects(t *testing.T) {
	cfg := DefaultPromotionConfig()
	byTerm := passingTerms(cfg)
	// Basic Science is F9 everywhere and must not block promotion.
	if outcome := cfg.checkGates(byTerm); outcome != nil {
		t.Errorf("non-gate subject blocked promotion: %s", outcome.Reason)
	}
}

func TestNextClass(t *testing.T) {
	cfg := DefaultPromotionConfig()
	tests := []struct {
		current string
		next    string
		ok      bool
	}{
		{"JSS1", "JSS2", true},
		{"JSS2", "JSS3", true},
		{"JSS3", "SS1", true},
		{"SS1", "SS2", true},
		{"SS2", "SS3", true},
		{"SS3", "", false},
		{"Primary 6", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		next, ok := cfg.NextClass(tt.current)
		if next != tt.next || ok != tt.ok {
			t.Errorf("NextClass(%q) = (%q, %v), want (%q, %v)", tt.current, next, ok, tt.next, tt.ok)
		}
	}
}
