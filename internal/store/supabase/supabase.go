// Package supabase implements the record store against a hosted
// Supabase project. Query shapes lean on PostgREST's embedded selects
// ("*, line_items(*)") so categories arrive with their line items and
// detailed transactions with resolved names in a single round trip.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/supabase-community/supabase-go"

	"budget/internal/core"
)

type Repository struct {
	client *supabase.Client
}

func NewRepository(url, key string) (*Repository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return &Repository{client: client}, nil
}

// Row shapes mirror the hosted schema. Amounts are numeric dollars on
// the wire and converted to cents at this boundary.
type (
	lineItemRow struct {
		ID            string   `json:"id,omitempty"`
		CategoryID    string   `json:"category_id"`
		Name          string   `json:"name"`
		PlannedAmount *float64 `json:"planned_amount"`
		Month         int      `json:"month"`
		Year          int      `json:"year"`
		CreatedBy     string   `json:"created_by,omitempty"`
	}

	categoryRow struct {
		ID          string        `json:"id,omitempty"`
		HouseholdID string        `json:"household_id"`
		Name        string        `json:"name"`
		Month       int           `json:"month"`
		Year        int           `json:"year"`
		LineItems   []lineItemRow `json:"line_items,omitempty"`
	}

	incomeRow struct {
		ID          string   `json:"id,omitempty"`
		HouseholdID string   `json:"household_id"`
		Name        string   `json:"name"`
		Amount      *float64 `json:"amount"`
		Month       int      `json:"month"`
		Year        int      `json:"year"`
		CreatedBy   string   `json:"created_by"`
	}

	transactionRow struct {
		ID          string   `json:"id,omitempty"`
		HouseholdID string   `json:"household_id"`
		LineItemID  *string  `json:"line_item_id"`
		Amount      *float64 `json:"amount"`
		Description *string  `json:"description,omitempty"`
		Date        *string  `json:"date"`
		Month       int      `json:"month"`
		Year        int      `json:"year"`
		CreatedBy   string   `json:"created_by,omitempty"`
	}

	transactionDetailRow struct {
		transactionRow
		LineItem *struct {
			Name     string `json:"name"`
			Category *struct {
				Name string `json:"name"`
			} `json:"categories"`
		} `json:"line_items"`
	}
)

func (r *Repository) ListCategories(ctx context.Context, month, year int, householdID string) ([]core.Category, error) {
	data, _, err := r.client.From("categories").
		Select("*, line_items(*)", "", false).
		Eq("household_id", householdID).
		Eq("year", strconv.Itoa(year)).
		Eq("month", strconv.Itoa(month)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	var rows []categoryRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}

	out := make([]core.Category, 0, len(rows))
	for _, row := range rows {
		c := core.Category{
			ID:          row.ID,
			HouseholdID: row.HouseholdID,
			Name:        row.Name,
			Month:       row.Month,
			Year:        row.Year,
		}
		for _, li := range row.LineItems {
			c.LineItems = append(c.LineItems, core.LineItem{
				ID:         li.ID,
				CategoryID: li.CategoryID,
				Name:       li.Name,
				Planned:    core.Money{Cents: centsOf(li.PlannedAmount)},
				Month:      li.Month,
				Year:       li.Year,
				CreatedBy:  li.CreatedBy,
			})
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *Repository) ListIncome(ctx context.Context, month, year int, householdID, userID string) ([]core.Income, error) {
	data, _, err := r.client.From("income").
		Select("*", "", false).
		Eq("household_id", householdID).
		Eq("created_by", userID).
		Eq("year", strconv.Itoa(year)).
		Eq("month", strconv.Itoa(month)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}

	var rows []incomeRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse income: %w", err)
	}

	out := make([]core.Income, 0, len(rows))
	for _, row := range rows {
		out = append(out, core.Income{
			ID:          row.ID,
			HouseholdID: row.HouseholdID,
			Name:        row.Name,
			Amount:      core.Money{Cents: centsOf(row.Amount)},
			Month:       row.Month,
			Year:        row.Year,
			CreatedBy:   row.CreatedBy,
		})
	}
	return out, nil
}

func (r *Repository) ListTransactions(ctx context.Context, month, year int, householdID string) ([]core.Transaction, error) {
	data, _, err := r.client.From("transactions").
		Select("id, household_id, line_item_id, amount, month, year", "", false).
		Eq("household_id", householdID).
		Eq("year", strconv.Itoa(year)).
		Eq("month", strconv.Itoa(month)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	var rows []transactionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse transactions: %w", err)
	}

	out := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.transaction())
	}
	return out, nil
}

func (r *Repository) ListTransactionsDetailed(ctx context.Context, month, year int, householdID string) ([]core.TransactionDetail, error) {
	data, _, err := r.client.From("transactions").
		Select("*, line_items(*, categories(*))", "", false).
		Eq("household_id", householdID).
		Eq("year", strconv.Itoa(year)).
		Eq("month", strconv.Itoa(month)).
		Order("date.desc", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("list transactions detailed: %w", err)
	}

	var rows []transactionDetailRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse transactions detailed: %w", err)
	}

	out := make([]core.TransactionDetail, 0, len(rows))
	for _, row := range rows {
		d := core.TransactionDetail{Transaction: row.transaction()}
		if row.LineItem != nil {
			d.LineItemName = row.LineItem.Name
			if row.LineItem.Category != nil {
				d.CategoryName = row.LineItem.Category.Name
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *Repository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	payload := categoryRow{
		HouseholdID: c.HouseholdID,
		Name:        c.Name,
		Month:       c.Month,
		Year:        c.Year,
	}
	data, _, err := r.client.From("categories").Insert(payload, false, "", "representation", "").Execute()
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}

	var created []categoryRow
	if err := json.Unmarshal(data, &created); err != nil {
		return core.Category{}, fmt.Errorf("parse created category: %w", err)
	}
	if len(created) > 0 {
		c.ID = created[0].ID
	}
	return c, nil
}

func (r *Repository) CreateLineItem(ctx context.Context, li core.LineItem) (core.LineItem, error) {
	planned := li.Planned.Dollars()
	payload := lineItemRow{
		CategoryID:    li.CategoryID,
		Name:          li.Name,
		PlannedAmount: &planned,
		Month:         li.Month,
		Year:          li.Year,
		CreatedBy:     li.CreatedBy,
	}
	data, _, err := r.client.From("line_items").Insert(payload, false, "", "representation", "").Execute()
	if err != nil {
		return core.LineItem{}, fmt.Errorf("create line item: %w", err)
	}

	var created []lineItemRow
	if err := json.Unmarshal(data, &created); err != nil {
		return core.LineItem{}, fmt.Errorf("parse created line item: %w", err)
	}
	if len(created) > 0 {
		li.ID = created[0].ID
	}
	return li, nil
}

func (r *Repository) UpdateLineItem(ctx context.Context, li core.LineItem) error {
	planned := li.Planned.Dollars()
	payload := map[string]any{
		"name":           li.Name,
		"category_id":    li.CategoryID,
		"planned_amount": planned,
	}
	_, _, err := r.client.From("line_items").
		Update(payload, "", "").
		Eq("id", li.ID).
		Execute()
	if err != nil {
		return fmt.Errorf("update line item: %w", err)
	}
	return nil
}

func (r *Repository) CreateIncome(ctx context.Context, in core.Income) (core.Income, error) {
	amount := in.Amount.Dollars()
	payload := incomeRow{
		HouseholdID: in.HouseholdID,
		Name:        in.Name,
		Amount:      &amount,
		Month:       in.Month,
		Year:        in.Year,
		CreatedBy:   in.CreatedBy,
	}
	data, _, err := r.client.From("income").Insert(payload, false, "", "representation", "").Execute()
	if err != nil {
		return core.Income{}, fmt.Errorf("create income: %w", err)
	}

	var created []incomeRow
	if err := json.Unmarshal(data, &created); err != nil {
		return core.Income{}, fmt.Errorf("parse created income: %w", err)
	}
	if len(created) > 0 {
		in.ID = created[0].ID
	}
	return in, nil
}

func (r *Repository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	data, _, err := r.client.From("transactions").Insert(rowFromTransaction(t), false, "", "representation", "").Execute()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	var created []transactionRow
	if err := json.Unmarshal(data, &created); err != nil {
		return core.Transaction{}, fmt.Errorf("parse created transaction: %w", err)
	}
	if len(created) > 0 {
		t.ID = created[0].ID
	}
	return t, nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	_, _, err := r.client.From("transactions").
		Update(rowFromTransaction(t), "", "").
		Eq("id", t.ID).
		Eq("household_id", t.HouseholdID).
		Execute()
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, id, householdID string) error {
	_, _, err := r.client.From("transactions").
		Delete("", "").
		Eq("id", id).
		Eq("household_id", householdID).
		Execute()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (row transactionRow) transaction() core.Transaction {
	t := core.Transaction{
		ID:          row.ID,
		HouseholdID: row.HouseholdID,
		Amount:      core.Money{Cents: centsOf(row.Amount)},
		Month:       row.Month,
		Year:        row.Year,
		CreatedBy:   row.CreatedBy,
	}
	if row.LineItemID != nil {
		t.LineItemID = *row.LineItemID
	}
	if row.Description != nil {
		t.Description = *row.Description
	}
	if row.Date != nil {
		t.Date = parseWireDate(*row.Date)
	}
	return t
}

func rowFromTransaction(t core.Transaction) transactionRow {
	amount := t.Amount.Dollars()
	row := transactionRow{
		HouseholdID: t.HouseholdID,
		Amount:      &amount,
		Month:       t.Month,
		Year:        t.Year,
		CreatedBy:   t.CreatedBy,
	}
	if t.LineItemID != "" {
		row.LineItemID = &t.LineItemID
	}
	if t.Description != "" {
		row.Description = &t.Description
	}
	if key := t.Date.DayKey(); key != "" {
		row.Date = &key
	}
	return row
}

func centsOf(dollars *float64) int64 {
	if dollars == nil {
		return 0
	}
	return core.CentsFromDollars(*dollars)
}

// parseWireDate accepts both date-only and RFC 3339 timestamp values.
func parseWireDate(s string) core.Date {
	if s == "" {
		return core.Date{}
	}
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return core.Date{Time: ts}
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return core.NewDate(ts.Year(), int(ts.Month()), ts.Day())
	}
	return core.Date{}
}
