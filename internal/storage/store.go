package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"expensetracker/internal/core"

	_ "modernc.org/sqlite"
)

// StorageError wraps a failure reported by the persistence engine. The
// wrapped detail goes to the logs; callers only ever see Message.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Message returns a caller-safe description without engine error text.
func (e *StorageError) Message() string {
	return "failed to " + e.Op
}

// Store is the append-only expense ledger backed by SQLite. Every operation
// is a stateless request/response over the database; no state is carried
// between calls.
type Store struct {
	db *sql.DB
}

// New opens the SQLite database at dbPath and ensures the schema exists.
// A schema failure here leaves the store unusable and must be fatal to the
// caller.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// withConn runs fn against a dedicated connection and releases it on every
// exit path.
func (s *Store) withConn(ctx context.Context, fn func(*sql.Conn) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()
	return fn(conn)
}

const recordColumns = "id, date, amount, category, subcategory, remark, created_at"

// Insert appends one validated expense and returns the newly assigned id.
func (s *Store) Insert(ctx context.Context, e core.Entry) (int64, error) {
	var id int64
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx,
			"INSERT INTO expenses(date, amount, category, subcategory, remark) VALUES (?, ?, ?, ?, ?)",
			e.Date, e.Amount, e.Category, e.Subcategory, e.Remark)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, &StorageError{Op: "insert expense", Err: err}
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"date", e.Date,
		"amount", e.Amount,
		"category", e.Category)

	return id, nil
}

// ListByRange returns all expenses with date between startDate and endDate
// inclusive, newest first. ISO dates compare correctly as strings. Ties in
// date are broken by id descending so the order is deterministic.
func (s *Store) ListByRange(ctx context.Context, startDate, endDate string) ([]core.Record, error) {
	query := "SELECT " + recordColumns + " FROM expenses WHERE date BETWEEN ? AND ? ORDER BY date DESC, id DESC"

	var records []core.Record
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, startDate, endDate)
		if err != nil {
			return err
		}
		defer rows.Close()

		records, err = scanRecords(rows)
		return err
	})
	if err != nil {
		return nil, &StorageError{Op: "retrieve expenses by range", Err: err}
	}
	return records, nil
}

// ListByCategory returns all expenses with an exact category match, in the
// store's natural scan order.
func (s *Store) ListByCategory(ctx context.Context, category string) ([]core.Record, error) {
	query := "SELECT " + recordColumns + " FROM expenses WHERE category = ?"

	var records []core.Record
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, category)
		if err != nil {
			return err
		}
		defer rows.Close()

		records, err = scanRecords(rows)
		return err
	})
	if err != nil {
		return nil, &StorageError{Op: "retrieve expenses by category", Err: err}
	}
	return records, nil
}

// TotalSpending sums amount across the whole ledger. An empty table yields
// the number 0, never an absent value.
func (s *Store) TotalSpending(ctx context.Context) (float64, error) {
	var total float64
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx,
			"SELECT COALESCE(SUM(amount), 0) FROM expenses").Scan(&total)
	})
	if err != nil {
		return 0, &StorageError{Op: "compute total spending", Err: err}
	}
	return total, nil
}

// Summarize aggregates expenses in the inclusive date range per category,
// ordered by category ascending. A non-empty category restricts the result
// to that single group.
func (s *Store) Summarize(ctx context.Context, startDate, endDate, category string) ([]core.CategorySummary, error) {
	var preds predicateSet
	preds.add("date BETWEEN ? AND ?", startDate, endDate)
	if category != "" {
		preds.add("category = ?", category)
	}

	query := "SELECT category, COUNT(*), SUM(amount) FROM expenses" +
		preds.where() + " GROUP BY category ORDER BY category ASC"

	summaries := []core.CategorySummary{}
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, preds.args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var cs core.CategorySummary
			if err := rows.Scan(&cs.Category, &cs.Count, &cs.Total); err != nil {
				return err
			}
			summaries = append(summaries, cs)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, &StorageError{Op: "summarize expenses", Err: err}
	}
	return summaries, nil
}

// predicateSet accumulates WHERE clauses together with their ordered
// arguments so the two can never drift apart.
type predicateSet struct {
	clauses []string
	args    []any
}

func (p *predicateSet) add(clause string, args ...any) {
	p.clauses = append(p.clauses, clause)
	p.args = append(p.args, args...)
}

func (p *predicateSet) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

func scanRecords(rows *sql.Rows) ([]core.Record, error) {
	records := []core.Record{}
	for rows.Next() {
		var (
			r         core.Record
			createdAt sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.Date, &r.Amount, &r.Category, &r.Subcategory, &r.Remark, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt = createdAt.Time
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
