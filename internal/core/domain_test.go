package core

import (
	"errors"
	"strings"
	"testing"
)

func validEntry() Entry {
	return Entry{
		Date:     "2024-01-15",
		Amount:   12.50,
		Category: "food",
	}
}

func TestEntryValidate(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*Entry)
		badFields []string
	}{
		{
			name:   "valid entry",
			mutate: func(e *Entry) {},
		},
		{
			name:   "optional fields stay empty",
			mutate: func(e *Entry) { e.Subcategory = ""; e.Remark = "" },
		},
		{
			name:      "zero amount",
			mutate:    func(e *Entry) { e.Amount = 0 },
			badFields: []string{"amount"},
		},
		{
			name:      "negative amount",
			mutate:    func(e *Entry) { e.Amount = -5 },
			badFields: []string{"amount"},
		},
		{
			name:      "malformed date",
			mutate:    func(e *Entry) { e.Date = "01-15-2024" },
			badFields: []string{"date"},
		},
		{
			name:      "date missing day",
			mutate:    func(e *Entry) { e.Date = "2024-01" },
			badFields: []string{"date"},
		},
		{
			name:      "short category",
			mutate:    func(e *Entry) { e.Category = "abc" },
			badFields: []string{"category"},
		},
		{
			name: "all fields wrong at once",
			mutate: func(e *Entry) {
				e.Date = "yesterday"
				e.Amount = -1
				e.Category = "x"
			},
			badFields: []string{"date", "amount", "category"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := validEntry()
			tc.mutate(&e)

			err := e.Validate()
			if len(tc.badFields) == 0 {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
			}
			if len(verr.Fields) != len(tc.badFields) {
				t.Fatalf("expected %d failing fields, got %d: %v",
					len(tc.badFields), len(verr.Fields), verr.Fields)
			}
			for i, want := range tc.badFields {
				if verr.Fields[i].Field != want {
					t.Errorf("field %d: expected %q, got %q", i, want, verr.Fields[i].Field)
				}
			}
		})
	}
}

// The date check is pattern-only: out-of-range months and days slip through.
// Kept this way on purpose, calendar validation is not part of the contract.
func TestEntryValidateDatePatternOnly(t *testing.T) {
	e := validEntry()
	e.Date = "2024-13-40"
	if err := e.Validate(); err != nil {
		t.Fatalf("syntactically well-formed date should pass: %v", err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	e := Entry{Date: "bad", Amount: -1, Category: "ab"}
	err := e.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"date:", "amount:", "category:"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q: %s", want, msg)
		}
	}
}
