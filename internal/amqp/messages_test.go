package amqp

import (
	"testing"
	"time"
)

func TestExpenseRecordedEventRoundTrip(t *testing.T) {
	event := NewExpenseRecordedEvent(42, "2024-06-01", 12.50, "food")
	if event.Timestamp.IsZero() {
		t.Fatal("event timestamp should be set")
	}

	body, err := event.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := ExpenseRecordedEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != 42 || got.Date != "2024-06-01" || got.Amount != 12.50 || got.Category != "food" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.Timestamp.Truncate(time.Millisecond).Equal(event.Timestamp.Truncate(time.Millisecond)) {
		t.Fatalf("timestamp mismatch: %v vs %v", got.Timestamp, event.Timestamp)
	}
}

func TestExpenseRecordedEventFromJSONInvalid(t *testing.T) {
	if _, err := ExpenseRecordedEventFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
