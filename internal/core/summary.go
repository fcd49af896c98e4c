package core

// CategorySummary is one aggregated group of a date-range summary.
type CategorySummary struct {
	Category string  `json:"category"`
	Count    int64   `json:"count"`
	Total    float64 `json:"total_amount"`
}
