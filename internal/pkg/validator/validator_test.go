package validator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsPositiveAmount(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"100.50", true},
		{"0.01", true},
		{"0", false},
		{"-25", false},
	}
	for _, c := range cases {
		got := IsPositiveAmount(decimal.RequireFromString(c.input))
		if got != c.want {
			t.Errorf("IsPositiveAmount(%s) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2025-01-31", "2024-02-29"}
	invalid := []string{"2025-02-30", "31-01-2025", "2025-1-5", "", "yesterday"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "amount", Message: "amount must be greater than zero"},
		{Field: "employee_id", Message: "employee_id is required"},
	}
	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap returned %d entries, want 2", len(m))
	}
	if m["amount"] != "amount must be greater than zero" {
		t.Errorf("unexpected message for amount: %q", m["amount"])
	}
}
