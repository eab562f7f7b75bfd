package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ScoreField is a tri-state numeric input: absent from the payload,
// explicitly null (or blank), or carrying a value. The zero value means
// absent. Merging code treats absent and null the same way (keep the
// stored value) but the distinction is kept so inserts can store NULL
// for scores that were never entered.
type ScoreField struct {
	Set   bool
	Valid bool
	Value float64
}

// Score wraps a known value for non-JSON callers such as the bulk
// importer.
func Score(v float64) ScoreField {
	return ScoreField{Set: true, Valid: true, Value: v}
}

// NullScore marks a field that was supplied but holds no value.
func NullScore() ScoreField {
	return ScoreField{Set: true}
}

func (f *ScoreField) UnmarshalJSON(data []byte) error {
	f.Set = true
	f.Valid = false
	s := string(data)
	if s == "null" {
		return nil
	}
	// Score sheets frequently send numbers as strings; a blank string
	// counts as null, not zero.
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid score %q", s)
	}
	f.Valid = true
	f.Value = v
	return nil
}

// Ptr returns the value as a nullable pointer.
func (f ScoreField) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// TextField is the string counterpart of ScoreField. A blank string is
// treated as null so partial updates never blank out a stored grade or
// remark.
type TextField struct {
	Set   bool
	Valid bool
	Value string
}

// Text wraps a known value for non-JSON callers.
func Text(v string) TextField {
	v = strings.TrimSpace(v)
	return TextField{Set: true, Valid: v != "", Value: v}
}

func (f *TextField) UnmarshalJSON(data []byte) error {
	f.Set = true
	f.Valid = false
	s := string(data)
	if s == "null" {
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		return nil
	}
	f.Valid = true
	f.Value = s
	return nil
}
