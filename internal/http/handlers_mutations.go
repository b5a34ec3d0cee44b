package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"budget/internal/core"
	"budget/internal/services"
)

// statusForError maps validation failures to 422 and everything else
// to 500. Validation sentinels are the only errors a client can fix.
func statusForError(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrMissingDate),
		errors.Is(err, core.ErrMissingLineItem):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseAmount accepts decimal dollar strings like "45", "$45.00", or
// "1,200.50" and returns cents.
func parseAmount(s string) (core.Money, error) {
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: cents}, nil
}

func parseTxDate(s string) (core.Date, error) {
	if s == "" {
		return core.Date{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return core.Date{}, err
	}
	return core.NewDate(t.Year(), int(t.Month()), t.Day()), nil
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScope(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	month := s.monthParam(r)
	category, err := s.service.AddCategory(r.Context(), sc.HouseholdID, month, sanitizeInput(req.Name))
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	s.invalidateHousehold(sc.HouseholdID)
	writeJSON(w, http.StatusCreated, toCategories([]core.Category{category})[0])
}

type lineItemRequest struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Planned    string `json:"planned"`
}

func (s *Server) handleCreateLineItem(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScope(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req lineItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	planned, err := parseAmount(req.Planned)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid planned amount")
		return
	}

	month := s.monthParam(r)
	item, err := s.service.AddLineItem(r.Context(), sanitizeInput(req.CategoryID), sc.UserID, month, sanitizeInput(req.Name), planned)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	s.invalidateHousehold(sc.HouseholdID)
	writeJSON(w, http.StatusCreated, lineItemJSON{
		ID:         item.ID,
		CategoryID: item.CategoryID,
		Name:       item.Name,
		Planned:    toMoney(item.Planned),
	})
}

func (s *Server) handleUpdateLineItem(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScope(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := sanitizeInput(r.PathValue("id"))
	var req lineItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	planned, err := parseAmount(req.Planned)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid planned amount")
		return
	}

	if err := s.service.UpdateLineItem(r.Context(), id, sanitizeInput(req.CategoryID), sanitizeInput(req.Name), planned); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	s.invalidateHousehold(sc.HouseholdID)
	w.WriteHeader(http.StatusNoContent)
}

type incomeRequest struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScope(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	month := s.monthParam(r)
	income, err := s.service.AddIncome(r.Context(), sc.HouseholdID, sc.UserID, month, sanitizeInput(req.Name), amount)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	s.invalidateHousehold(sc.HouseholdID)
	writeJSON(w, http.StatusCreated, incomeJSON{ID: income.ID, Name: income.Name, Amount: toMoney(income.Amount)})
}

type transactionRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	LineItemID  string `json:"line_item_id"`
	Date        string `json:"date"`
}

func (s *Server) transactionInput(req transactionRequest) (services.TransactionInput, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return services.TransactionInput{}, err
	}
	date, err := parseTxDate(sanitizeInput(req.Date))
	if err != nil {
		return services.TransactionInput{}, err
	}
	return services.TransactionInput{
		Amount:      amount,
		Description: sanitizeInput(req.Description),
		LineItemID:  sanitizeInput(req.LineItemID),
		Date:        date,
	}, nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScope(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in, err := s.transactionInput(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	month := s.monthParam(r)
	tx, err := s.service.AddTransaction(r.Context(), sc.HouseholdID, sc.UserID, month, in)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	s.invalidateHousehold(sc.HouseholdID)
	writeJSON(w, http.StatusCreated, transactionJSON{
		ID:          tx.ID,
		Amount:      toMoney(tx.Amount),
		Description: tx.Description,
		Date:        tx.Date.DayKey(),
		LineItemID:  tx.LineItemID,
	})
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScope(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := sanitizeInput(r.PathValue("id"))
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in, err := s.transactionInput(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	month := s.monthParam(r)
	if err := s.service.UpdateTransaction(r.Context(), id, sc.HouseholdID, sc.UserID, month, in); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	s.invalidateHousehold(sc.HouseholdID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScope(r, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := sanitizeInput(r.PathValue("id"))

	if err := s.service.DeleteTransaction(r.Context(), id, sc.HouseholdID); err != nil {
		slog.ErrorContext(r.Context(), "Transaction delete error", "error", err, "household_id", sc.HouseholdID)
		writeError(w, statusForError(err), err.Error())
		return
	}

	s.invalidateHousehold(sc.HouseholdID)
	w.WriteHeader(http.StatusNoContent)
}
