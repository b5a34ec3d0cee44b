// Package services assembles month-scoped budget views from the
// record store and guards the write path with validation.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"budget/internal/core"
	"budget/internal/monthkey"
	"budget/internal/store"
)

// Overview is the spending summary for one month: how much was
// planned, how much went out, and where it went.
type Overview struct {
	MonthKey      string
	Month         int
	Year          int
	Categories    []core.Category
	TotalPlanned  core.Money
	SpentAmount   core.Money
	Remaining     core.Money
	PercentSpent  int
	CategorySpent []core.CategorySpent
}

// Plan is the budgeting view for one month: income against planned
// allocations, per-line-item spending, and the day-bucketed
// transaction list.
type Plan struct {
	MonthKey        string
	Month           int
	Year            int
	Categories      []core.Category
	Income          []core.Income
	TotalIncome     core.Money
	TotalPlanned    core.Money
	Remaining       core.Money
	SpentByLineItem map[string]core.Money
	Days            []DayGroup
}

// DayGroup is one calendar day's transactions, already ordered for
// display.
type DayGroup struct {
	Date         string
	Transactions []core.TransactionDetail
}

// BudgetService orchestrates reads and validated writes against the
// record store.
type BudgetService struct {
	store store.Store
}

func NewBudgetService(s store.Store) *BudgetService {
	return &BudgetService{store: s}
}

// Overview fetches the month's categories and transactions
// concurrently and assembles the spending summary.
//
// The fetches are independent: when one fails, the others finish and
// the aggregates computable from what arrived are still populated.
// The first error encountered is returned alongside the partial
// result; callers decide whether to render it.
func (s *BudgetService) Overview(ctx context.Context, householdID, monthKey string) (Overview, error) {
	month, year := monthkey.Decode(monthKey)
	ov := Overview{MonthKey: monthkey.Encode(month, year), Month: month, Year: year}

	var (
		categories   []core.Category
		transactions []core.Transaction
	)

	// Deliberately not errgroup.WithContext: a failed fetch must not
	// cancel its siblings.
	var g errgroup.Group
	g.Go(func() error {
		var err error
		categories, err = s.store.ListCategories(ctx, month, year, householdID)
		if err != nil {
			return fmt.Errorf("fetch categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		transactions, err = s.store.ListTransactions(ctx, month, year, householdID)
		if err != nil {
			return fmt.Errorf("fetch transactions: %w", err)
		}
		return nil
	})
	err := g.Wait()

	ov.Categories = categories
	ov.TotalPlanned = core.TotalPlanned(categories)
	ov.SpentAmount = core.TotalSpent(transactions)
	ov.Remaining = core.Remaining(ov.TotalPlanned, ov.SpentAmount)
	ov.PercentSpent = core.Percent(ov.SpentAmount, ov.TotalPlanned)
	ov.CategorySpent = core.SpentByCategory(transactions, core.LineItemsOf(categories), categories)

	if err != nil {
		slog.WarnContext(ctx, "Overview assembled with partial data",
			"household_id", householdID, "month_key", ov.MonthKey, "error", err)
	}
	return ov, err
}

// Plan fetches the month's four collections concurrently and
// assembles the budgeting view. Partial-failure behavior matches
// Overview.
func (s *BudgetService) Plan(ctx context.Context, householdID, userID, monthKey string) (Plan, error) {
	month, year := monthkey.Decode(monthKey)
	p := Plan{MonthKey: monthkey.Encode(month, year), Month: month, Year: year}

	var (
		categories   []core.Category
		income       []core.Income
		transactions []core.Transaction
		detailed     []core.TransactionDetail
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		categories, err = s.store.ListCategories(ctx, month, year, householdID)
		if err != nil {
			return fmt.Errorf("fetch categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		income, err = s.store.ListIncome(ctx, month, year, householdID, userID)
		if err != nil {
			return fmt.Errorf("fetch income: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		transactions, err = s.store.ListTransactions(ctx, month, year, householdID)
		if err != nil {
			return fmt.Errorf("fetch transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		detailed, err = s.store.ListTransactionsDetailed(ctx, month, year, householdID)
		if err != nil {
			return fmt.Errorf("fetch transaction list: %w", err)
		}
		return nil
	})
	err := g.Wait()

	p.Categories = categories
	p.Income = income
	p.TotalIncome = core.TotalIncome(income)
	p.TotalPlanned = core.TotalPlanned(categories)
	p.Remaining = core.Remaining(p.TotalIncome, p.TotalPlanned)
	p.SpentByLineItem = core.SpentByLineItem(transactions)
	p.Days = groupDays(detailed)

	if err != nil {
		slog.WarnContext(ctx, "Plan assembled with partial data",
			"household_id", householdID, "month_key", p.MonthKey, "error", err)
	}
	return p, err
}

// TransactionList returns the month's transactions bucketed by day in
// reverse-chronological order.
func (s *BudgetService) TransactionList(ctx context.Context, householdID, monthKey string) ([]DayGroup, error) {
	month, year := monthkey.Decode(monthKey)
	detailed, err := s.store.ListTransactionsDetailed(ctx, month, year, householdID)
	if err != nil {
		return nil, fmt.Errorf("fetch transaction list: %w", err)
	}
	return groupDays(detailed), nil
}

func groupDays(detailed []core.TransactionDetail) []DayGroup {
	groups := core.GroupByDate(detailed)
	keys := core.SortedDateKeys(groups)
	out := make([]DayGroup, 0, len(keys))
	for _, k := range keys {
		out = append(out, DayGroup{Date: k, Transactions: groups[k]})
	}
	return out
}
