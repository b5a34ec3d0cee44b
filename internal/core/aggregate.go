package core

import "math"

// CategorySpent is the amount spent against one category for a month.
// Name stays empty when the category row could not be resolved.
type CategorySpent struct {
	CategoryID   string
	CategoryName string
	Spent        Money
}

// TotalPlanned sums the planned amounts of every line item nested
// under the given categories. Nil or empty input yields zero; a
// category without line items contributes nothing.
func TotalPlanned(categories []Category) Money {
	var total int64
	for _, c := range categories {
		for _, li := range c.LineItems {
			total += li.Planned.Cents
		}
	}
	return Money{Cents: total}
}

// TotalSpent sums the amounts of all transactions in scope, including
// uncategorized ones.
func TotalSpent(transactions []Transaction) Money {
	var total int64
	for _, t := range transactions {
		total += t.Amount.Cents
	}
	return Money{Cents: total}
}

// TotalIncome sums income entries. The rows are already filtered by
// household, month, and creating user at the store; income totals are
// per contributor, not household-wide.
func TotalIncome(rows []Income) Money {
	var total int64
	for _, in := range rows {
		total += in.Amount.Cents
	}
	return Money{Cents: total}
}

// SpentByCategory folds transaction amounts by the category each
// transaction's line item belongs to. Transactions without a line
// item, or whose line item is absent from lineItems, are dropped from
// the breakdown (they still count toward TotalSpent). A category id
// missing from categories yields an empty name rather than an error.
//
// Result order is the order in which each category first appears in
// the transaction scan, so output is deterministic for a given fetch.
func SpentByCategory(transactions []Transaction, lineItems []LineItem, categories []Category) []CategorySpent {
	lineItemCategory := make(map[string]string, len(lineItems))
	for _, li := range lineItems {
		lineItemCategory[li.ID] = li.CategoryID
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	index := make(map[string]int)
	var out []CategorySpent
	for _, t := range transactions {
		if t.LineItemID == "" {
			continue
		}
		categoryID, ok := lineItemCategory[t.LineItemID]
		if !ok || categoryID == "" {
			continue
		}
		i, seen := index[categoryID]
		if !seen {
			i = len(out)
			index[categoryID] = i
			out = append(out, CategorySpent{
				CategoryID:   categoryID,
				CategoryName: categoryNames[categoryID],
			})
		}
		out[i].Spent.Cents += t.Amount.Cents
	}
	return out
}

// LineItemsOf flattens the line items nested under categories,
// preserving order. Convenience for callers that fetched categories
// with embedded line items.
func LineItemsOf(categories []Category) []LineItem {
	var out []LineItem
	for _, c := range categories {
		out = append(out, c.LineItems...)
	}
	return out
}

// SpentByLineItem folds transaction amounts by line item id.
// Uncategorized transactions are excluded from the map entirely.
func SpentByLineItem(transactions []Transaction) map[string]Money {
	out := make(map[string]Money)
	for _, t := range transactions {
		if t.LineItemID == "" {
			continue
		}
		m := out[t.LineItemID]
		m.Cents += t.Amount.Cents
		out[t.LineItemID] = m
	}
	return out
}

// Remaining is planned minus spent. Negative means over budget; no
// clamping is applied.
func Remaining(planned, spent Money) Money {
	return Money{Cents: planned.Cents - spent.Cents}
}

// Percent returns round(numerator/denominator*100) as an integer.
// A non-positive denominator yields 0. Values above 100 are not
// clamped: an overspent budget reads as, say, 125%. Progress bars
// clamp for display on their own.
func Percent(numerator, denominator Money) int {
	if denominator.Cents <= 0 {
		return 0
	}
	return int(math.Round(float64(numerator.Cents) / float64(denominator.Cents) * 100))
}
