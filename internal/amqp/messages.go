package amqp

import (
	"encoding/json"
	"time"
)

// ExpenseRecordedEvent is published after an expense has been committed to
// the ledger. Consumers get the full record identity but fetch anything
// else from the store.
type ExpenseRecordedEvent struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseRecordedEvent creates an event for a freshly inserted expense.
func NewExpenseRecordedEvent(id int64, date string, amount float64, category string) *ExpenseRecordedEvent {
	return &ExpenseRecordedEvent{
		ID:        id,
		Date:      date,
		Amount:    amount,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *ExpenseRecordedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseRecordedEventFromJSON creates an event from JSON bytes
func ExpenseRecordedEventFromJSON(data []byte) (*ExpenseRecordedEvent, error) {
	var ev ExpenseRecordedEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
