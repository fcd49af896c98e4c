package core

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// datePattern is a syntactic check only: months and days are not range
// checked, so "2024-13-40" is accepted. Calendar validity is out of scope.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// MinCategoryLength is the minimum number of characters for a category name.
const MinCategoryLength = 4

type (
	// Entry is a candidate expense before it reaches storage.
	Entry struct {
		Date        string  // ISO format YYYY-MM-DD
		Amount      float64 // strictly positive
		Category    string
		Subcategory string
		Remark      string
	}

	// Record is a stored expense row. The ledger is append-only: a record
	// is never updated or deleted once it has an ID.
	Record struct {
		ID          int64     `json:"id"`
		Date        string    `json:"date"`
		Amount      float64   `json:"amount"`
		Category    string    `json:"category"`
		Subcategory string    `json:"subcategory"`
		Remark      string    `json:"remark"`
		CreatedAt   time.Time `json:"created_at"`
	}
)

// FieldError describes one validation failure on a named field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every failing field of an entry, not just the
// first, so callers can report all problems at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return "invalid entry: " + strings.Join(parts, "; ")
}

// Validate checks the entry's shape and returns a *ValidationError listing
// every failing field. Subcategory and remark are optional and stay empty
// strings when absent, so they are never rejected.
func (e Entry) Validate() error {
	var fields []FieldError

	if !datePattern.MatchString(e.Date) {
		fields = append(fields, FieldError{
			Field:  "date",
			Reason: "must match YYYY-MM-DD",
		})
	}
	if e.Amount <= 0 {
		fields = append(fields, FieldError{
			Field:  "amount",
			Reason: "must be greater than zero",
		})
	}
	if len(e.Category) < MinCategoryLength {
		fields = append(fields, FieldError{
			Field:  "category",
			Reason: fmt.Sprintf("must be at least %d characters", MinCategoryLength),
		})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
