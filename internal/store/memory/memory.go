// Package memory is an in-memory record store used for development
// and tests. It mirrors the ordering guarantees of the real backends:
// detailed transaction lists come back date-descending, stable by
// insertion order within a day.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"budget/internal/core"
)

type Store struct {
	mu           sync.Mutex
	categories   []core.Category
	lineItems    []core.LineItem
	income       []core.Income
	transactions []core.Transaction
}

func New() *Store {
	return &Store{}
}

func (s *Store) ListCategories(_ context.Context, month, year int, householdID string) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Category
	for _, c := range s.categories {
		if c.HouseholdID != householdID || c.Month != month || c.Year != year {
			continue
		}
		cc := c
		cc.LineItems = nil
		for _, li := range s.lineItems {
			if li.CategoryID == c.ID {
				cc.LineItems = append(cc.LineItems, li)
			}
		}
		out = append(out, cc)
	}
	return out, nil
}

func (s *Store) ListIncome(_ context.Context, month, year int, householdID, userID string) ([]core.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Income
	for _, in := range s.income {
		if in.HouseholdID == householdID && in.Month == month && in.Year == year && in.CreatedBy == userID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (s *Store) ListTransactions(_ context.Context, month, year int, householdID string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Transaction
	for _, t := range s.transactions {
		if t.HouseholdID == householdID && t.Month == month && t.Year == year {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) ListTransactionsDetailed(_ context.Context, month, year int, householdID string) ([]core.TransactionDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lineItems := make(map[string]core.LineItem, len(s.lineItems))
	for _, li := range s.lineItems {
		lineItems[li.ID] = li
	}
	categoryNames := make(map[string]string, len(s.categories))
	for _, c := range s.categories {
		categoryNames[c.ID] = c.Name
	}

	var out []core.TransactionDetail
	for _, t := range s.transactions {
		if t.HouseholdID != householdID || t.Month != month || t.Year != year {
			continue
		}
		d := core.TransactionDetail{Transaction: t}
		if li, ok := lineItems[t.LineItemID]; ok {
			d.LineItemName = li.Name
			d.CategoryName = categoryNames[li.CategoryID]
		}
		out = append(out, d)
	}

	// Date descending, stable: ties keep insertion order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out, nil
}

func (s *Store) CreateCategory(_ context.Context, c core.Category) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.New().String()
	s.categories = append(s.categories, c)
	return c, nil
}

func (s *Store) CreateLineItem(_ context.Context, li core.LineItem) (core.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.categoryExists(li.CategoryID) {
		return core.LineItem{}, fmt.Errorf("category %s not found", li.CategoryID)
	}
	li.ID = uuid.New().String()
	s.lineItems = append(s.lineItems, li)
	return li, nil
}

func (s *Store) UpdateLineItem(_ context.Context, li core.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lineItems {
		if s.lineItems[i].ID == li.ID {
			s.lineItems[i].Name = li.Name
			s.lineItems[i].CategoryID = li.CategoryID
			s.lineItems[i].Planned = li.Planned
			return nil
		}
	}
	return fmt.Errorf("line item %s not found", li.ID)
}

func (s *Store) CreateIncome(_ context.Context, in core.Income) (core.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ID = uuid.New().String()
	s.income = append(s.income, in)
	return in, nil
}

func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = uuid.New().String()
	s.transactions = append(s.transactions, t)
	return t, nil
}

func (s *Store) UpdateTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.transactions {
		if s.transactions[i].ID == t.ID {
			s.transactions[i].Amount = t.Amount
			s.transactions[i].Description = t.Description
			s.transactions[i].Date = t.Date
			s.transactions[i].LineItemID = t.LineItemID
			s.transactions[i].Month = t.Month
			s.transactions[i].Year = t.Year
			return nil
		}
	}
	return fmt.Errorf("transaction %s not found", t.ID)
}

func (s *Store) DeleteTransaction(_ context.Context, id, householdID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.transactions {
		if s.transactions[i].ID == id && s.transactions[i].HouseholdID == householdID {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("transaction %s not found", id)
}

// DeleteLineItem removes a line item without touching transactions
// that reference it. Test helper for exercising the dangling-reference
// degradation in aggregation.
func (s *Store) DeleteLineItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lineItems {
		if s.lineItems[i].ID == id {
			s.lineItems = append(s.lineItems[:i], s.lineItems[i+1:]...)
			return
		}
	}
}

func (s *Store) categoryExists(id string) bool {
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
