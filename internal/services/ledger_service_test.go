package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

type fakePublisher struct {
	events []*amqp.ExpenseRecordedEvent
	err    error
}

func (f *fakePublisher) PublishExpenseRecorded(ctx context.Context, event *amqp.ExpenseRecordedEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func newTestService(t *testing.T, publisher EventPublisher) *LedgerService {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	svc := NewLedgerService(store, publisher)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestAddExpensePublishesEvent(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(t, pub)

	id, err := svc.AddExpense(context.Background(), core.Entry{
		Date:     "2024-06-01",
		Amount:   9.90,
		Category: "food",
	})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a non-zero id")
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.ID != id || ev.Category != "food" || ev.Date != "2024-06-01" {
		t.Fatalf("event does not match expense: %+v", ev)
	}
}

func TestAddExpensePublishFailureDoesNotFailInsert(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker unavailable")}
	svc := newTestService(t, pub)

	id, err := svc.AddExpense(context.Background(), core.Entry{
		Date:     "2024-06-01",
		Amount:   5,
		Category: "transport",
	})
	if err != nil {
		t.Fatalf("insert must succeed even when publishing fails: %v", err)
	}

	records, err := svc.GetExpensesByCategory(context.Background(), "transport")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].ID != id {
		t.Fatalf("expense should be committed, got %+v", records)
	}
}

func TestAddExpenseRejectsInvalidEntry(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.AddExpense(context.Background(), core.Entry{
		Date:     "not-a-date",
		Amount:   -1,
		Category: "ab",
	})

	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *core.ValidationError, got %T (%v)", err, err)
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("expected all 3 failing fields reported, got %+v", verr.Fields)
	}

	// Nothing may reach the store on validation failure
	total, err := svc.GetTotalSpending(context.Background())
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 0 {
		t.Fatalf("store should be empty, total = %v", total)
	}
}

func TestAddExpenseWithoutPublisher(t *testing.T) {
	svc := newTestService(t, nil)

	if _, err := svc.AddExpense(context.Background(), core.Entry{
		Date:     "2024-06-02",
		Amount:   3.20,
		Category: "food",
	}); err != nil {
		t.Fatalf("nil publisher must be supported: %v", err)
	}
}

func TestSummarizeDelegation(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	entries := []core.Entry{
		{Date: "2024-06-01", Amount: 10, Category: "food"},
		{Date: "2024-06-02", Amount: 5, Category: "transport"},
	}
	for _, e := range entries {
		if _, err := svc.AddExpense(ctx, e); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	summaries, err := svc.Summarize(ctx, "2024-06-01", "2024-06-30", "")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 groups, got %+v", summaries)
	}
}
