package core

import "sort"

// UnknownDateKey is the sentinel bucket for transactions whose date is
// missing. It always sorts after every dated bucket.
const UnknownDateKey = "Unknown Date"

// GroupByDate buckets transactions by calendar day (YYYY-MM-DD).
// Transactions with a zero date land in the UnknownDateKey bucket.
// Within a bucket the input order is preserved, so the store's
// date-descending fetch order carries through unchanged.
func GroupByDate(transactions []TransactionDetail) map[string][]TransactionDetail {
	groups := make(map[string][]TransactionDetail)
	for _, t := range transactions {
		key := t.Date.DayKey()
		if key == "" {
			key = UnknownDateKey
		}
		groups[key] = append(groups[key], t)
	}
	return groups
}

// SortedDateKeys returns the bucket keys in reverse-chronological
// order. YYYY-MM-DD keys compare correctly as strings; the unknown
// sentinel is pinned to the end regardless of its lexical rank.
func SortedDateKeys(groups map[string][]TransactionDetail) []string {
	keys := make([]string, 0, len(groups))
	hasUnknown := false
	for k := range groups {
		if k == UnknownDateKey {
			hasUnknown = true
			continue
		}
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	if hasUnknown {
		keys = append(keys, UnknownDateKey)
	}
	return keys
}
