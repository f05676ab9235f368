package services

import (
	"testing"
	"time"
)

func TestParseDate_Nil(t *testing.T) {
	got, err := parseDate(nil)
	if err != nil {
		t.Fatalf("parseDate(nil) error = %v", err)
	}
	if got != nil {
		t.Errorf("parseDate(nil) = %v, expected nil", got)
	}
}

func TestParseDate_Empty(t *testing.T) {
	s := ""
	got, err := parseDate(&s)
	if err != nil {
		t.Fatalf("parseDate(\"\") error = %v", err)
	}
	if got != nil {
		t.Errorf("parseDate(\"\") = %v, expected nil", got)
	}
}

func TestParseDate_Valid(t *testing.T) {
	s := "2025-03-14"
	got, err := parseDate(&s)
	if err != nil {
		t.Fatalf("parseDate(%q) error = %v", s, err)
	}

	expected := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if got == nil || !got.Equal(expected) {
		t.Errorf("parseDate(%q) = %v, expected %v", s, got, expected)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	invalid := []string{"14-03-2025", "2025/03/14", "not-a-date", "2025-13-01"}

	for _, s := range invalid {
		v := s
		if _, err := parseDate(&v); err == nil {
			t.Errorf("parseDate(%q) should return error", s)
		}
	}
}
