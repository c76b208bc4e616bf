package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hisab/internal/core"
	"hisab/internal/ledger"
)

type memSlots struct {
	values map[string]string
}

func (m *memSlots) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memSlots) Put(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func newTestServer(t *testing.T) (*Server, *ledger.Book) {
	t.Helper()
	book, err := ledger.Open(context.Background(), &memSlots{values: make(map[string]string)})
	require.NoError(t, err)
	srv := NewServer(":0", book, 10)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv, book
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateTransaction(t *testing.T) {
	srv, book := newTestServer(t)

	rec := postForm(srv, "/transactions", url.Values{
		"amount":   {"1200.50"},
		"type":     {"expense"},
		"category": {"Food"},
		"date":     {"2024-01-06"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	trigger := rec.Header().Get("HX-Trigger")
	assert.Contains(t, trigger, "ledger:changed")
	assert.Contains(t, trigger, "show-notification")
	assert.Contains(t, trigger, "success")

	all := book.All()
	require.Len(t, all, 1)
	assert.Equal(t, int64(120050), all[0].Amount.Cents)
	assert.Equal(t, core.Date("2024-01-06"), all[0].Date)
	assert.Equal(t, "#ef4444", all[0].Color)
}

func TestCreateTransactionDefaultsDateToToday(t *testing.T) {
	srv, book := newTestServer(t)

	rec := postForm(srv, "/transactions", url.Values{
		"amount":   {"10"},
		"type":     {"income"},
		"category": {"Salary"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, book.All(), 1)
	assert.Equal(t, core.Today(), book.All()[0].Date)
}

func TestCreateTransactionRejectsBadAmount(t *testing.T) {
	srv, book := newTestServer(t)

	for _, amount := range []string{"0", "-5", "abc", ""} {
		rec := postForm(srv, "/transactions", url.Values{
			"amount":   {amount},
			"type":     {"expense"},
			"category": {"Food"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "amount %q", amount)
		assert.Contains(t, rec.Header().Get("HX-Trigger"), "error")
	}
	assert.Equal(t, 0, book.Len(), "rejected input must not mutate the sequence")
}

func TestCreateTransactionRejectsUnknownType(t *testing.T) {
	srv, book := newTestServer(t)

	rec := postForm(srv, "/transactions", url.Values{
		"amount":   {"10"},
		"type":     {"transfer"},
		"category": {"Food"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 0, book.Len())
}

func TestCreateTransactionMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(srv, "/transactions")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))
}

func TestDeleteTransaction(t *testing.T) {
	srv, book := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, book.Add(ctx, seedTx(1, "Food")))
	require.NoError(t, book.Add(ctx, seedTx(2, "Travel")))

	rec := postForm(srv, "/transactions/delete", url.Values{"id": {"1"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("HX-Trigger"), "warning")
	all := book.All()
	require.Len(t, all, 1)
	assert.Equal(t, int64(2), all[0].ID)
}

func TestDeleteMissingIDStillRenders(t *testing.T) {
	srv, book := newTestServer(t)
	require.NoError(t, book.Add(context.Background(), seedTx(1, "Food")))

	rec := postForm(srv, "/transactions/delete", url.Values{"id": {"999"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("HX-Trigger"), "ledger:changed")
	assert.Equal(t, 1, book.Len())
}

func TestTransactionListWindow(t *testing.T) {
	srv, book := newTestServer(t)
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		require.NoError(t, book.Add(ctx, seedTx(int64(i), fmt.Sprintf("Cat%02d", i))))
	}

	body := get(srv, "/ui/transactions").Body.String()
	assert.Equal(t, 10, strings.Count(body, "transaction-item"), "exactly the 10 newest")
	assert.Contains(t, body, "Cat12")
	assert.Contains(t, body, "Cat03")
	assert.NotContains(t, body, "Cat02")
	assert.NotContains(t, body, "Cat01")

	// A 13th transaction pushes the current 10th out of view.
	require.NoError(t, book.Add(ctx, seedTx(13, "Cat13")))
	body = get(srv, "/ui/transactions").Body.String()
	assert.Contains(t, body, "Cat13")
	assert.NotContains(t, body, "Cat03")
}

func TestTransactionListEmptyState(t *testing.T) {
	srv, _ := newTestServer(t)
	body := get(srv, "/ui/transactions").Body.String()
	assert.Contains(t, body, "empty-state")
	assert.Contains(t, body, "No transactions yet")
}

func TestTransactionListMonthFilter(t *testing.T) {
	srv, book := newTestServer(t)
	ctx := context.Background()

	jan := seedTx(1, "Food")
	jan.Date = core.NewDate(2024, 1, 5)
	mar := seedTx(2, "Travel")
	mar.Date = core.NewDate(2024, 3, 9)
	require.NoError(t, book.Add(ctx, jan))
	require.NoError(t, book.Add(ctx, mar))

	body := get(srv, "/ui/transactions?month=2024-03").Body.String()
	assert.Contains(t, body, "Travel")
	assert.NotContains(t, body, "Food")

	// Empty token returns everything.
	body = get(srv, "/ui/transactions?month=").Body.String()
	assert.Contains(t, body, "Travel")
	assert.Contains(t, body, "Food")
}

func TestSummaryPartial(t *testing.T) {
	srv, book := newTestServer(t)
	ctx := context.Background()

	income := seedTx(1, "Salary")
	income.Kind = core.Income
	income.Amount = core.Money{Cents: 500000}
	expense := seedTx(2, "Food")
	expense.Amount = core.Money{Cents: 120000}
	require.NoError(t, book.Add(ctx, income))
	require.NoError(t, book.Add(ctx, expense))

	body := get(srv, "/ui/summary").Body.String()
	assert.Contains(t, body, "₹5,000")
	assert.Contains(t, body, "₹1,200")
	assert.Contains(t, body, "₹3,800")
}

func TestChartDataEmpty(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(srv, "/chart-data")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"empty":true}`, rec.Body.String())
}

func TestChartData(t *testing.T) {
	srv, book := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, book.Add(ctx, seedTx(1, "Food")))

	rec := get(srv, "/chart-data")
	require.Equal(t, http.StatusOK, rec.Code)

	var ds core.Dataset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ds))
	assert.Equal(t, []string{"Food"}, ds.Labels)
	assert.Equal(t, []float64{100}, ds.Values)
	assert.Equal(t, []string{"#ef4444"}, ds.Colors)
}

func TestExport(t *testing.T) {
	srv, book := newTestServer(t)
	ctx := context.Background()

	rec := get(srv, "/export")
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "expenses_")
	assert.Equal(t, "Date,Type,Category,Amount", rec.Body.String(), "empty ledger exports only the header")

	tx := seedTx(1, "Food")
	tx.Date = core.NewDate(2024, 1, 6)
	require.NoError(t, book.Add(ctx, tx))

	body := get(srv, "/export").Body.String()
	assert.Contains(t, body, "06/01/2024,EXPENSE,Food,100")
}

func TestDarkModeToggle(t *testing.T) {
	srv, book := newTestServer(t)

	rec := postForm(srv, "/settings/dark-mode", url.Values{"enabled": {"true"}})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, book.DarkMode())

	rec = postForm(srv, "/settings/dark-mode", url.Values{"enabled": {"false"}})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, book.DarkMode())
}

func TestIndexRenders(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(srv, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "transactionForm")
	for _, category := range core.KnownCategories() {
		assert.Contains(t, body, category)
	}
}

func seedTx(id int64, category string) core.Transaction {
	return core.Transaction{
		ID:       id,
		Amount:   core.Money{Cents: 10000},
		Kind:     core.Expense,
		Category: category,
		Date:     core.NewDate(2024, 5, 1),
		Color:    core.ColorFor(category),
	}
}
