package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestScoreFieldUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		set   bool
		valid bool
		value float64
	}{
		{"absent", `{}`, false, false, 0},
		{"null", `{"score": null}`, true, false, 0},
		{"blank string", `{"score": ""}`, true, false, 0},
		{"whitespace string", `{"score": "  "}`, true, false, 0},
		{"number", `{"score": 42.5}`, true, true, 42.5},
		{"zero", `{"score": 0}`, true, true, 0},
		{"numeric string", `{"score": "67"}`, true, true, 67},
		{"padded numeric string", `{"score": " 67 "}`, true, true, 67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				Score ScoreField `json:"score"`
			}
			if err := json.Unmarshal([]byte(tt.body), &payload); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			f := payload.Score
			if f.Set != tt.set || f.Valid != tt.valid || f.Value != tt.value {
				t.Errorf("got %+v, want set=%v valid=%v value=%v", f, tt.set, tt.valid, tt.value)
			}
		})
	}
}

func TestScoreFieldUnmarshalRejectsGarbage(t *testing.T) {
	var payload struct {
		Score ScoreField `json:"score"`
	}
	if err := json.Unmarshal([]byte(`{"score": "abc"}`), &payload); err == nil {
		t.Error("expected error for non-numeric string")
	}
}

func TestTextFieldUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		set   bool
		valid bool
		value string
	}{
		{"absent", `{}`, false, false, ""},
		{"null", `{"grade": null}`, true, false, ""},
		{"blank", `{"grade": ""}`, true, false, ""},
		{"value", `{"grade": "A1"}`, true, true, "A1"},
		{"padded value", `{"grade": " A1 "}`, true, true, "A1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				Grade TextField `json:"grade"`
			}
			if err := json.Unmarshal([]byte(tt.body), &payload); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			f := payload.Grade
			if f.Set != tt.set || f.Valid != tt.valid || f.Value != tt.value {
				t.Errorf("got %+v, want set=%v valid=%v value=%q", f, tt.set, tt.valid, tt.value)
			}
		})
	}
}

func TestScoreConstructors(t *testing.T) {
	s := Score(12)
	if !s.Set || !s.Valid || s.Value != 12 {
		t.Errorf("Score(12) = %+v", s)
	}
	n := NullScore()
	if !n.Set || n.Valid {
		t.Errorf("NullScore() = %+v", n)
	}
	if n.Ptr() != nil {
		t.Error("NullScore().Ptr() should be nil")
	}
	if p := s.Ptr(); p == nil || *p != 12 {
		t.Errorf("Score(12).Ptr() = %v", p)
	}
}

func TestTextConstructorTrims(t *testing.T) {
	f := Text("  B2 ")
	if !f.Valid || f.Value != "B2" {
		t.Errorf("Text trimmed = %+v", f)
	}
	if Text("   ").Valid {
		t.Error("blank text must not be valid")
	}
}

func TestResultKeyValidate(t *testing.T) {
	key := ResultKey{StudentID: "JSS1-0001", Subject: "English", Term: "1st Term", Session: "2024/25", Class: "JSS1"}
	if err := key.Validate(); err != nil {
		t.Errorf("complete key rejected: %v", err)
	}

	key.Subject = ""
	key.Class = ""
	err := key.Validate()
	if err == nil {
		t.Fatal("incomplete key accepted")
	}
	if !IsValidation(err) {
		t.Fatalf("error %T is not a validation error", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %T does not unwrap to *ValidationError", err)
	}
	if len(verr.Fields) != 2 || verr.Fields[0] != "subject" || verr.Fields[1] != "class" {
		t.Errorf("missing fields = %v, want [subject class]", verr.Fields)
	}
}

func TestResultTotals(t *testing.T) {
	v1, v2, v3 := 10.0, 8.0, 50.0
	r := Result{CA1: &v1, CA2: &v2, Exam: &v3}
	if r.CATotal() != 18 {
		t.Errorf("CATotal = %v, want 18", r.CATotal())
	}
	if r.Total() != 68 {
		t.Errorf("Total = %v, want 68", r.Total())
	}
	if r.ExamScore() != 50 {
		t.Errorf("ExamScore = %v, want 50", r.ExamScore())
	}

	empty := Result{}
	if empty.Total() != 0 || empty.ExamScore() != 0 {
		t.Error("missing scores must count as zero")
	}
}
