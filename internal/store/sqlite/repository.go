// Package sqlite implements the record store on a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"budget/internal/core"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
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

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) ListCategories(ctx context.Context, month, year int, householdID string) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, household_id, name, month, year
		 FROM categories
		 WHERE household_id = ? AND year = ? AND month = ?
		 ORDER BY created_at`,
		householdID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	index := make(map[string]int)
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.HouseholdID, &c.Name, &c.Month, &c.Year); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, nil
	}

	liRows, err := r.db.QueryContext(ctx,
		`SELECT li.id, li.category_id, li.name, li.planned_cents, li.month, li.year, li.created_by
		 FROM line_items li
		 JOIN categories c ON c.id = li.category_id
		 WHERE c.household_id = ? AND c.year = ? AND c.month = ?
		 ORDER BY li.created_at`,
		householdID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer liRows.Close()

	for liRows.Next() {
		var li core.LineItem
		if err := liRows.Scan(&li.ID, &li.CategoryID, &li.Name, &li.Planned.Cents, &li.Month, &li.Year, &li.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		if i, ok := index[li.CategoryID]; ok {
			categories[i].LineItems = append(categories[i].LineItems, li)
		}
	}
	if err := liRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate line items: %w", err)
	}

	return categories, nil
}

func (r *Repository) ListIncome(ctx context.Context, month, year int, householdID, userID string) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, household_id, name, amount_cents, month, year, created_by
		 FROM income
		 WHERE household_id = ? AND year = ? AND month = ? AND created_by = ?
		 ORDER BY created_at`,
		householdID, year, month, userID)
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}
	defer rows.Close()

	var out []core.Income
	for rows.Next() {
		var in core.Income
		if err := rows.Scan(&in.ID, &in.HouseholdID, &in.Name, &in.Amount.Cents, &in.Month, &in.Year, &in.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *Repository) ListTransactions(ctx context.Context, month, year int, householdID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, household_id, COALESCE(line_item_id, ''), amount_cents, month, year
		 FROM transactions
		 WHERE household_id = ? AND year = ? AND month = ?`,
		householdID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.ID, &t.HouseholdID, &t.LineItemID, &t.Amount.Cents, &t.Month, &t.Year); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) ListTransactionsDetailed(ctx context.Context, month, year int, householdID string) ([]core.TransactionDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.household_id, COALESCE(t.line_item_id, ''), t.amount_cents,
		        t.description, COALESCE(t.tx_date, ''), t.month, t.year, t.created_by,
		        COALESCE(li.name, ''), COALESCE(c.name, '')
		 FROM transactions t
		 LEFT JOIN line_items li ON li.id = t.line_item_id
		 LEFT JOIN categories c ON c.id = li.category_id
		 WHERE t.household_id = ? AND t.year = ? AND t.month = ?
		 ORDER BY t.tx_date DESC, t.created_at ASC`,
		householdID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list transactions detailed: %w", err)
	}
	defer rows.Close()

	var out []core.TransactionDetail
	for rows.Next() {
		var d core.TransactionDetail
		var dateStr string
		if err := rows.Scan(&d.ID, &d.HouseholdID, &d.LineItemID, &d.Amount.Cents,
			&d.Description, &dateStr, &d.Month, &d.Year, &d.CreatedBy,
			&d.LineItemName, &d.CategoryName); err != nil {
			return nil, fmt.Errorf("scan transaction detail: %w", err)
		}
		d.Date = parseDayKey(dateStr)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	c.ID = uuid.New().String()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, household_id, name, month, year) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.HouseholdID, c.Name, c.Month, c.Year)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}

	slog.InfoContext(ctx, "Category saved",
		"id", c.ID, "name", c.Name, "month", c.Month, "year", c.Year)
	return c, nil
}

func (r *Repository) CreateLineItem(ctx context.Context, li core.LineItem) (core.LineItem, error) {
	li.ID = uuid.New().String()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO line_items (id, category_id, name, planned_cents, month, year, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		li.ID, li.CategoryID, li.Name, li.Planned.Cents, li.Month, li.Year, li.CreatedBy)
	if err != nil {
		return core.LineItem{}, fmt.Errorf("create line item: %w", err)
	}

	slog.InfoContext(ctx, "Line item saved",
		"id", li.ID, "name", li.Name, "planned_cents", li.Planned.Cents)
	return li, nil
}

func (r *Repository) UpdateLineItem(ctx context.Context, li core.LineItem) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE line_items SET name = ?, category_id = ?, planned_cents = ? WHERE id = ?`,
		li.Name, li.CategoryID, li.Planned.Cents, li.ID)
	if err != nil {
		return fmt.Errorf("update line item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("line item %s not found", li.ID)
	}
	return nil
}

func (r *Repository) CreateIncome(ctx context.Context, in core.Income) (core.Income, error) {
	in.ID = uuid.New().String()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO income (id, household_id, name, amount_cents, month, year, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.HouseholdID, in.Name, in.Amount.Cents, in.Month, in.Year, in.CreatedBy)
	if err != nil {
		return core.Income{}, fmt.Errorf("create income: %w", err)
	}

	slog.InfoContext(ctx, "Income saved",
		"id", in.ID, "name", in.Name, "amount_cents", in.Amount.Cents)
	return in, nil
}

func (r *Repository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.ID = uuid.New().String()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, household_id, line_item_id, amount_cents, description, tx_date, month, year, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.HouseholdID, nullable(t.LineItemID), t.Amount.Cents, t.Description,
		nullable(t.Date.DayKey()), t.Month, t.Year, t.CreatedBy)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID, "amount_cents", t.Amount.Cents, "line_item_id", t.LineItemID)
	return t, nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET amount_cents = ?, description = ?, tx_date = ?, line_item_id = ?, month = ?, year = ?
		 WHERE id = ? AND household_id = ?`,
		t.Amount.Cents, t.Description, nullable(t.Date.DayKey()), nullable(t.LineItemID),
		t.Month, t.Year, t.ID, t.HouseholdID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("transaction %s not found", t.ID)
	}
	return nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, id, householdID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND household_id = ?`,
		id, householdID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("transaction %s not found", id)
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// parseDayKey parses a stored YYYY-MM-DD value; empty or malformed
// values come back as the zero date (the unknown-date bucket).
func parseDayKey(s string) core.Date {
	if s == "" {
		return core.Date{}
	}
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%04d-%02d-%02d", &y, &m, &d); err != nil {
		return core.Date{}
	}
	return core.NewDate(y, m, d)
}
