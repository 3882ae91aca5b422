package utils_test

import (
	"testing"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/utils"
)

func TestValidEmail(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"a@b.com", true},
		{"first.last@example.co.uk", true},
		{"", false},
		{"nope", false},
		{"a@b", false},
		{"a b@c.com", false},
	}
	for _, tc := range cases {
		if got := utils.ValidEmail(tc.in); got != tc.ok {
			t.Errorf("ValidEmail(%q) = %v, want %v", tc.in, got, tc.ok)
		}
	}
}

func TestValidDateAndClock(t *testing.T) {
	if !utils.ValidDate("2026-09-01") {
		t.Error("expected 2026-09-01 to be valid")
	}
	if utils.ValidDate("09/01/2026") || utils.ValidDate("2026-13-01") {
		t.Error("expected malformed dates to be rejected")
	}
	if !utils.ValidClock("14:30") {
		t.Error("expected 14:30 to be valid")
	}
	if utils.ValidClock("25:00") || utils.ValidClock("2pm") {
		t.Error("expected malformed times to be rejected")
	}
}
