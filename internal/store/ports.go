// Package store defines the ports every record-store backend must
// implement. The aggregation core consumes flat, already-assembled
// structures; any join or embedding needed to produce them happens
// behind these interfaces.
package store

import (
	"context"

	"budget/internal/core"
)

// Ports for outbound store adapters.
type (
	// CategoryReader returns the month's categories with their line
	// items embedded.
	CategoryReader interface {
		ListCategories(ctx context.Context, month, year int, householdID string) ([]core.Category, error)
	}

	// IncomeReader returns the month's income entries. Rows are
	// filtered by the creating user as well: income totals are per
	// contributor, not household-wide.
	IncomeReader interface {
		ListIncome(ctx context.Context, month, year int, householdID, userID string) ([]core.Income, error)
	}

	// TransactionReader returns the month's transactions in
	// lightweight form (amount and line-item reference), enough for
	// sums and per-line-item folds.
	TransactionReader interface {
		ListTransactions(ctx context.Context, month, year int, householdID string) ([]core.Transaction, error)
	}

	// TransactionLister returns the month's transactions with
	// line-item and category names resolved, ordered by date
	// descending at the source.
	TransactionLister interface {
		ListTransactionsDetailed(ctx context.Context, month, year int, householdID string) ([]core.TransactionDetail, error)
	}

	// CategoryWriter creates categories. Categories are never deleted
	// through this surface.
	CategoryWriter interface {
		CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
	}

	// LineItemWriter creates and updates line items.
	LineItemWriter interface {
		CreateLineItem(ctx context.Context, li core.LineItem) (core.LineItem, error)
		UpdateLineItem(ctx context.Context, li core.LineItem) error
	}

	// IncomeWriter creates income entries.
	IncomeWriter interface {
		CreateIncome(ctx context.Context, in core.Income) (core.Income, error)
	}

	// TransactionWriter creates, updates, and deletes transactions.
	// Deletion is physical; transactions are the only entity with a
	// delete path.
	TransactionWriter interface {
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, t core.Transaction) error
		DeleteTransaction(ctx context.Context, id, householdID string) error
	}
)

// Store is the full record-store surface a backend provides.
type Store interface {
	CategoryReader
	IncomeReader
	TransactionReader
	TransactionLister
	CategoryWriter
	LineItemWriter
	IncomeWriter
	TransactionWriter
}
