// This file maps assembled budget views onto the JSON wire shapes.
// Amounts go out both as raw cents and as a display string so clients
// never re-implement currency formatting.
package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"budget/internal/core"
	"budget/internal/services"
)

type moneyJSON struct {
	Cents   int64  `json:"cents"`
	Display string `json:"display"`
}

func toMoney(m core.Money) moneyJSON {
	return moneyJSON{Cents: m.Cents, Display: formatDollars(m.Cents)}
}

type lineItemJSON struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	Planned    moneyJSON `json:"planned"`
}

type categoryJSON struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	LineItems []lineItemJSON `json:"line_items"`
}

type categorySpentJSON struct {
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Spent        moneyJSON `json:"spent"`
}

type incomeJSON struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Amount moneyJSON `json:"amount"`
}

type transactionJSON struct {
	ID           string    `json:"id"`
	Amount       moneyJSON `json:"amount"`
	Description  string    `json:"description"`
	Date         string    `json:"date,omitempty"`
	LineItemID   string    `json:"line_item_id,omitempty"`
	LineItemName string    `json:"line_item_name,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
}

type dayGroupJSON struct {
	Date         string            `json:"date"`
	Transactions []transactionJSON `json:"transactions"`
}

type overviewJSON struct {
	MonthKey      string              `json:"month_key"`
	Month         int                 `json:"month"`
	Year          int                 `json:"year"`
	Categories    []categoryJSON      `json:"categories"`
	TotalPlanned  moneyJSON           `json:"total_planned"`
	SpentAmount   moneyJSON           `json:"spent_amount"`
	Remaining     moneyJSON           `json:"remaining"`
	PercentSpent  int                 `json:"percent_spent"`
	CategorySpent []categorySpentJSON `json:"category_spent"`
}

type planJSON struct {
	MonthKey        string               `json:"month_key"`
	Month           int                  `json:"month"`
	Year            int                  `json:"year"`
	Categories      []categoryJSON       `json:"categories"`
	Income          []incomeJSON         `json:"income"`
	TotalIncome     moneyJSON            `json:"total_income"`
	TotalPlanned    moneyJSON            `json:"total_planned"`
	Remaining       moneyJSON            `json:"remaining"`
	SpentByLineItem map[string]moneyJSON `json:"spent_by_line_item"`
	Days            []dayGroupJSON       `json:"days"`
}

func toCategories(cats []core.Category) []categoryJSON {
	out := make([]categoryJSON, 0, len(cats))
	for _, c := range cats {
		items := make([]lineItemJSON, 0, len(c.LineItems))
		for _, li := range c.LineItems {
			items = append(items, lineItemJSON{
				ID:         li.ID,
				CategoryID: li.CategoryID,
				Name:       li.Name,
				Planned:    toMoney(li.Planned),
			})
		}
		out = append(out, categoryJSON{ID: c.ID, Name: c.Name, LineItems: items})
	}
	return out
}

func toDayGroups(days []services.DayGroup) []dayGroupJSON {
	out := make([]dayGroupJSON, 0, len(days))
	for _, d := range days {
		txs := make([]transactionJSON, 0, len(d.Transactions))
		for _, t := range d.Transactions {
			txs = append(txs, transactionJSON{
				ID:           t.ID,
				Amount:       toMoney(t.Amount),
				Description:  t.Description,
				Date:         t.Date.DayKey(),
				LineItemID:   t.LineItemID,
				LineItemName: t.LineItemName,
				CategoryName: t.CategoryName,
			})
		}
		out = append(out, dayGroupJSON{Date: d.Date, Transactions: txs})
	}
	return out
}

func toOverview(ov services.Overview) overviewJSON {
	spent := make([]categorySpentJSON, 0, len(ov.CategorySpent))
	for _, cs := range ov.CategorySpent {
		spent = append(spent, categorySpentJSON{
			CategoryID:   cs.CategoryID,
			CategoryName: cs.CategoryName,
			Spent:        toMoney(cs.Spent),
		})
	}
	return overviewJSON{
		MonthKey:      ov.MonthKey,
		Month:         ov.Month,
		Year:          ov.Year,
		Categories:    toCategories(ov.Categories),
		TotalPlanned:  toMoney(ov.TotalPlanned),
		SpentAmount:   toMoney(ov.SpentAmount),
		Remaining:     toMoney(ov.Remaining),
		PercentSpent:  ov.PercentSpent,
		CategorySpent: spent,
	}
}

func toPlan(p services.Plan) planJSON {
	income := make([]incomeJSON, 0, len(p.Income))
	for _, in := range p.Income {
		income = append(income, incomeJSON{ID: in.ID, Name: in.Name, Amount: toMoney(in.Amount)})
	}
	byItem := make(map[string]moneyJSON, len(p.SpentByLineItem))
	for id, m := range p.SpentByLineItem {
		byItem[id] = toMoney(m)
	}
	return planJSON{
		MonthKey:        p.MonthKey,
		Month:           p.Month,
		Year:            p.Year,
		Categories:      toCategories(p.Categories),
		Income:          income,
		TotalIncome:     toMoney(p.TotalIncome),
		TotalPlanned:    toMoney(p.TotalPlanned),
		Remaining:       toMoney(p.Remaining),
		SpentByLineItem: byItem,
		Days:            toDayGroups(p.Days),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encoding failed", "error", err)
	}
}

type errorJSON struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorJSON{Error: msg})
}

// formatDollars renders cents as a $ amount with thousands separators.
func formatDollars(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	dollars := cents / 100
	rem := cents % 100

	s := strconv.FormatInt(dollars, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	s = "$" + s + fmt.Sprintf(".%02d", rem)
	if neg {
		return "-" + s
	}
	return s
}
