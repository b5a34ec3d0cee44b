package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget/internal/core"
	"budget/internal/services"
	"budget/internal/store/memory"
)

const (
	testHousehold = "hh-1"
	testUser      = "user-1"
	testMonth     = "January-2025"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	mem := memory.New()
	svc := services.NewBudgetService(mem)
	srv := NewServer(":0", svc, Options{CacheSize: 16, CacheTTL: time.Minute})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv, mem
}

func seedServer(t *testing.T, mem *memory.Store) core.LineItem {
	t.Helper()
	ctx := context.Background()
	svc := services.NewBudgetService(mem)

	category, err := svc.AddCategory(ctx, testHousehold, testMonth, "Food")
	require.NoError(t, err)
	lineItem, err := svc.AddLineItem(ctx, category.ID, testUser, testMonth, "Groceries", core.Money{Cents: 20000})
	require.NoError(t, err)
	_, err = svc.AddIncome(ctx, testHousehold, testUser, testMonth, "Paycheck", core.Money{Cents: 500000})
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, testHousehold, testUser, testMonth, services.TransactionInput{
		Amount:     core.Money{Cents: 5000},
		LineItemID: lineItem.ID,
		Date:       core.NewDate(2025, 1, 20),
	})
	require.NoError(t, err)
	return lineItem
}

func doRequest(t *testing.T, srv *Server, method, target, body string, scoped bool) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if scoped {
		r.Header.Set("X-Household-ID", testHousehold)
		r.Header.Set("X-User-ID", testUser)
	}
	w := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(w, r)
	return w
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		w := doRequest(t, srv, http.MethodGet, path, "", false)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestOverviewEndpoint(t *testing.T) {
	srv, mem := newTestServer(t)
	seedServer(t, mem)

	w := doRequest(t, srv, http.MethodGet, "/api/overview?month=January-2025", "", true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp overviewJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "January-2025", resp.MonthKey)
	assert.Equal(t, int64(20000), resp.TotalPlanned.Cents)
	assert.Equal(t, "$200.00", resp.TotalPlanned.Display)
	assert.Equal(t, int64(5000), resp.SpentAmount.Cents)
	assert.Equal(t, 25, resp.PercentSpent)
	require.Len(t, resp.CategorySpent, 1)
	assert.Equal(t, "Food", resp.CategorySpent[0].CategoryName)
}

func TestOverviewRequiresHousehold(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/overview", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanEndpoint(t *testing.T) {
	srv, mem := newTestServer(t)
	lineItem := seedServer(t, mem)

	w := doRequest(t, srv, http.MethodGet, "/api/plan?month=January-2025", "", true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp planJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(500000), resp.TotalIncome.Cents)
	assert.Equal(t, int64(480000), resp.Remaining.Cents)
	assert.Equal(t, int64(5000), resp.SpentByLineItem[lineItem.ID].Cents)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "2025-01-20", resp.Days[0].Date)
}

func TestCreateTransactionInvalidatesCache(t *testing.T) {
	srv, mem := newTestServer(t)
	lineItem := seedServer(t, mem)

	// Prime the cache.
	w := doRequest(t, srv, http.MethodGet, "/api/overview?month=January-2025", "", true)
	require.Equal(t, http.StatusOK, w.Code)

	body := `{"amount":"$25.00","description":"coffee","line_item_id":"` + lineItem.ID + `","date":"2025-01-21"}`
	w = doRequest(t, srv, http.MethodPost, "/api/transactions?month=January-2025", body, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var created transactionJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(2500), created.Amount.Cents)

	// The cached overview must reflect the new transaction.
	w = doRequest(t, srv, http.MethodGet, "/api/overview?month=January-2025", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var resp overviewJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7500), resp.SpentAmount.Cents)
}

func TestCreateTransactionValidation(t *testing.T) {
	srv, mem := newTestServer(t)
	lineItem := seedServer(t, mem)

	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "bad amount",
			body: `{"amount":"-5","line_item_id":"` + lineItem.ID + `","date":"2025-01-21"}`,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "missing line item",
			body: `{"amount":"5.00","date":"2025-01-21"}`,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "bad date",
			body: `{"amount":"5.00","line_item_id":"` + lineItem.ID + `","date":"21/01/2025"}`,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "malformed json",
			body: `{"amount":`,
			want: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, srv, http.MethodPost, "/api/transactions?month=January-2025", tt.body, true)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestDeleteTransaction(t *testing.T) {
	srv, mem := newTestServer(t)
	lineItem := seedServer(t, mem)

	body := `{"amount":"10.00","line_item_id":"` + lineItem.ID + `","date":"2025-01-22"}`
	w := doRequest(t, srv, http.MethodPost, "/api/transactions?month=January-2025", body, true)
	require.Equal(t, http.StatusCreated, w.Code)
	var created transactionJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(t, srv, http.MethodDelete, "/api/transactions/"+created.ID, "", true)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/api/overview?month=January-2025", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var resp overviewJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(5000), resp.SpentAmount.Cents)
}

func TestMonthSelectionEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/month", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var start monthJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &start))

	w = doRequest(t, srv, http.MethodPost, "/api/month/next", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var next monthJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &next))
	assert.NotEqual(t, start.MonthKey, next.MonthKey)

	w = doRequest(t, srv, http.MethodPost, "/api/month/reset", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var reset monthJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reset))
	assert.Equal(t, start.MonthKey, reset.MonthKey)
}

func TestFormatDollars(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{4500, "$45.00"},
		{120050, "$1,200.50"},
		{123456789, "$1,234,567.89"},
		{-2500, "-$25.00"},
	}
	for _, tt := range tests {
		if got := formatDollars(tt.cents); got != tt.want {
			t.Errorf("formatDollars(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, mem := newTestServer(t)
	seedServer(t, mem)

	w := doRequest(t, srv, http.MethodGet, "/api/overview?month=January-2025", "", true)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
