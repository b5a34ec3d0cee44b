package services

import (
	"context"
	"fmt"
	"log/slog"

	"budget/internal/core"
	"budget/internal/monthkey"
)

// Validation runs before any store call; a rejected input never
// reaches the backend, and a rejected write leaves no partial state.

// AddCategory creates a category in the month named by monthKey.
func (s *BudgetService) AddCategory(ctx context.Context, householdID, monthKey, name string) (core.Category, error) {
	month, year := monthkey.Decode(monthKey)
	c := core.Category{
		HouseholdID: householdID,
		Name:        name,
		Month:       month,
		Year:        year,
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	created, err := s.store.CreateCategory(ctx, c)
	if err != nil {
		return core.Category{}, fmt.Errorf("add category: %w", err)
	}
	slog.InfoContext(ctx, "Category added", "id", created.ID, "name", created.Name, "month_key", monthKey)
	return created, nil
}

// AddLineItem creates a planned line item under a category.
func (s *BudgetService) AddLineItem(ctx context.Context, categoryID, userID, monthKey, name string, planned core.Money) (core.LineItem, error) {
	month, year := monthkey.Decode(monthKey)
	li := core.LineItem{
		CategoryID: categoryID,
		Name:       name,
		Planned:    planned,
		Month:      month,
		Year:       year,
		CreatedBy:  userID,
	}
	if err := li.Validate(); err != nil {
		return core.LineItem{}, err
	}

	created, err := s.store.CreateLineItem(ctx, li)
	if err != nil {
		return core.LineItem{}, fmt.Errorf("add line item: %w", err)
	}
	slog.InfoContext(ctx, "Line item added", "id", created.ID, "name", created.Name, "planned_cents", created.Planned.Cents)
	return created, nil
}

// UpdateLineItem renames or re-plans an existing line item.
func (s *BudgetService) UpdateLineItem(ctx context.Context, id, categoryID, name string, planned core.Money) error {
	li := core.LineItem{
		ID:         id,
		CategoryID: categoryID,
		Name:       name,
		Planned:    planned,
	}
	if err := li.Validate(); err != nil {
		return err
	}

	if err := s.store.UpdateLineItem(ctx, li); err != nil {
		return fmt.Errorf("update line item: %w", err)
	}
	return nil
}

// AddIncome creates an income entry owned by the acting user.
func (s *BudgetService) AddIncome(ctx context.Context, householdID, userID, monthKey, name string, amount core.Money) (core.Income, error) {
	month, year := monthkey.Decode(monthKey)
	in := core.Income{
		HouseholdID: householdID,
		Name:        name,
		Amount:      amount,
		Month:       month,
		Year:        year,
		CreatedBy:   userID,
	}
	if err := in.Validate(); err != nil {
		return core.Income{}, err
	}

	created, err := s.store.CreateIncome(ctx, in)
	if err != nil {
		return core.Income{}, fmt.Errorf("add income: %w", err)
	}
	slog.InfoContext(ctx, "Income added", "id", created.ID, "name", created.Name, "amount_cents", created.Amount.Cents)
	return created, nil
}

// TransactionInput carries the fields of a transaction create or
// update.
type TransactionInput struct {
	Amount      core.Money
	Description string
	LineItemID  string
	Date        core.Date
}

// AddTransaction records an expense against a line item.
func (s *BudgetService) AddTransaction(ctx context.Context, householdID, userID, monthKey string, in TransactionInput) (core.Transaction, error) {
	month, year := monthkey.Decode(monthKey)
	t := core.Transaction{
		HouseholdID: householdID,
		LineItemID:  in.LineItemID,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		Month:       month,
		Year:        year,
		CreatedBy:   userID,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	created, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	slog.InfoContext(ctx, "Transaction added", "id", created.ID, "amount_cents", created.Amount.Cents, "line_item_id", created.LineItemID)
	return created, nil
}

// UpdateTransaction rewrites an existing transaction's fields.
func (s *BudgetService) UpdateTransaction(ctx context.Context, id, householdID, userID, monthKey string, in TransactionInput) error {
	month, year := monthkey.Decode(monthKey)
	t := core.Transaction{
		ID:          id,
		HouseholdID: householdID,
		LineItemID:  in.LineItemID,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		Month:       month,
		Year:        year,
		CreatedBy:   userID,
	}
	if err := t.Validate(); err != nil {
		return err
	}

	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

// DeleteTransaction physically removes a transaction. Transactions
// are the only entity with a delete path.
func (s *BudgetService) DeleteTransaction(ctx context.Context, id, householdID string) error {
	if err := s.store.DeleteTransaction(ctx, id, householdID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}
