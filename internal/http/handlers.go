package http

import (
	"log/slog"
	"net/http"

	applog "budget/internal/log"
	"budget/internal/monthkey"
)

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScope(r, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	month := s.monthParam(r)

	key := s.viewCacheKey(sc.HouseholdID, month)
	if ov, found := s.overviewCache.Get(key); found {
		slog.DebugContext(r.Context(), "Overview cache hit", "household_id", sc.HouseholdID, "month_key", month)
		writeJSON(w, http.StatusOK, toOverview(ov))
		return
	}

	ov, err := s.service.Overview(r.Context(), sc.HouseholdID, month)
	if err != nil {
		s.logger.LogError(r.Context(), "Overview assembly error", err, applog.ComponentBudget, applog.OpRead,
			applog.NewFields().WithBudgetScope(sc.HouseholdID, month))
		writeError(w, http.StatusInternalServerError, "failed to load overview")
		return
	}

	s.overviewCache.Set(key, ov)
	writeJSON(w, http.StatusOK, toOverview(ov))
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScope(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	month := s.monthParam(r)

	// Income is per-user, so the plan cache key carries the user too.
	key := s.viewCacheKey(sc.HouseholdID, month) + ":" + sc.UserID
	if p, found := s.planCache.Get(key); found {
		slog.DebugContext(r.Context(), "Plan cache hit", "household_id", sc.HouseholdID, "month_key", month)
		writeJSON(w, http.StatusOK, toPlan(p))
		return
	}

	p, err := s.service.Plan(r.Context(), sc.HouseholdID, sc.UserID, month)
	if err != nil {
		s.logger.LogError(r.Context(), "Plan assembly error", err, applog.ComponentBudget, applog.OpRead,
			applog.NewFields().WithBudgetScope(sc.HouseholdID, month))
		writeError(w, http.StatusInternalServerError, "failed to load plan")
		return
	}

	s.planCache.Set(key, p)
	writeJSON(w, http.StatusOK, toPlan(p))
}

func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScope(r, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	month := s.monthParam(r)

	key := s.viewCacheKey(sc.HouseholdID, month)
	if days, found := s.transactionsCache.Get(key); found {
		writeJSON(w, http.StatusOK, toDayGroups(days))
		return
	}

	days, err := s.service.TransactionList(r.Context(), sc.HouseholdID, month)
	if err != nil {
		s.logger.LogError(r.Context(), "Transaction list error", err, applog.ComponentBudget, applog.OpList,
			applog.NewFields().WithBudgetScope(sc.HouseholdID, month))
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	s.transactionsCache.Set(key, days)
	writeJSON(w, http.StatusOK, toDayGroups(days))
}

type monthJSON struct {
	MonthKey string `json:"month_key"`
	Label    string `json:"label"`
}

func (s *Server) writeMonth(w http.ResponseWriter) {
	key := s.selection.Current()
	writeJSON(w, http.StatusOK, monthJSON{
		MonthKey: key,
		Label:    monthkey.DisplayLabel(key),
	})
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	s.writeMonth(w)
}

func (s *Server) handleMonthNext(w http.ResponseWriter, r *http.Request) {
	s.selection.Next()
	s.writeMonth(w)
}

func (s *Server) handleMonthPrevious(w http.ResponseWriter, r *http.Request) {
	s.selection.Previous()
	s.writeMonth(w)
}

func (s *Server) handleMonthReset(w http.ResponseWriter, r *http.Request) {
	s.selection.Reset()
	s.writeMonth(w)
}
