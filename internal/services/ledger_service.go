package services

import (
	"context"
	"fmt"
	"log/slog"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

// EventPublisher publishes ledger events. Nil disables publishing.
type EventPublisher interface {
	PublishExpenseRecorded(ctx context.Context, event *amqp.ExpenseRecordedEvent) error
}

// LedgerService orchestrates validation, the SQLite ledger and the optional
// AMQP event stream.
type LedgerService struct {
	store     *storage.Store
	publisher EventPublisher
}

func NewLedgerService(store *storage.Store, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
	}
}

// AddExpense validates and appends one expense, returning the new id.
// Validation failures never reach the store. A publish failure is logged
// but does not fail the insert; the expense is already committed.
func (s *LedgerService) AddExpense(ctx context.Context, entry core.Entry) (int64, error) {
	if err := entry.Validate(); err != nil {
		return 0, err
	}

	id, err := s.store.Insert(ctx, entry)
	if err != nil {
		return 0, fmt.Errorf("save expense: %w", err)
	}

	if s.publisher != nil {
		event := amqp.NewExpenseRecordedEvent(id, entry.Date, entry.Amount, entry.Category)
		if err := s.publisher.PublishExpenseRecorded(ctx, event); err != nil {
			slog.ErrorContext(ctx, "Failed to publish expense recorded event",
				"id", id, "error", err)
			// Don't fail the request - expense is saved locally
		}
	}

	return id, nil
}

// ListExpensesByRange returns expenses between startDate and endDate
// inclusive, newest first.
func (s *LedgerService) ListExpensesByRange(ctx context.Context, startDate, endDate string) ([]core.Record, error) {
	return s.store.ListByRange(ctx, startDate, endDate)
}

// GetExpensesByCategory returns expenses matching category exactly.
func (s *LedgerService) GetExpensesByCategory(ctx context.Context, category string) ([]core.Record, error) {
	return s.store.ListByCategory(ctx, category)
}

// GetTotalSpending returns the sum of all amounts, 0 when the ledger is empty.
func (s *LedgerService) GetTotalSpending(ctx context.Context) (float64, error) {
	return s.store.TotalSpending(ctx)
}

// Summarize aggregates spending per category over an inclusive date range,
// optionally restricted to one category.
func (s *LedgerService) Summarize(ctx context.Context, startDate, endDate, category string) ([]core.CategorySummary, error) {
	return s.store.Summarize(ctx, startDate, endDate, category)
}

// Close releases the service's resources
func (s *LedgerService) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
