package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hisab/internal/core"
	"hisab/internal/export"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Categories []string
		Today      string
		DarkMode   bool
	}{
		Categories: core.KnownCategories(),
		Today:      string(core.Today()),
		DarkMode:   s.book.DarkMode(),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	amountStr := strings.TrimSpace(r.Form.Get("amount"))
	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		UnprocessableEntityError("Please enter valid amount").Write(w)
		return
	}

	kind := core.Kind(strings.TrimSpace(r.Form.Get("type")))
	if err := kind.Validate(); err != nil {
		UnprocessableEntityError("Unknown transaction type").Write(w)
		return
	}

	// Any category label is accepted; unknown ones just get the fallback color.
	category := sanitizeInput(r.Form.Get("category"))

	date := core.Date(strings.TrimSpace(r.Form.Get("date")))
	if date != "" {
		if err := date.Validate(); err != nil {
			UnprocessableEntityError("Invalid date").Write(w)
			return
		}
	}

	tx := core.New(core.Money{Cents: cents}, kind, category, date)
	if err := s.book.Add(r.Context(), tx); err != nil {
		slog.ErrorContext(r.Context(), "Transaction add error", "error", err, "category", tx.Category, "amount_cents", tx.Amount.Cents)
		InternalServerError("Could not save transaction").Write(w)
		return
	}

	NewResponse().
		TriggerLedgerChanged().
		TriggerNotification(NotifySuccess, "Transaction added successfully!").
		BodyHTML(`<div class="success">Transaction added</div>`).
		Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(r.Form.Get("id")), 10, 64)
	if err != nil {
		BadRequestError("Invalid transaction id").Write(w)
		return
	}

	// Removing a missing id is a no-op that still re-persists and re-renders.
	if err := s.book.Remove(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Transaction remove error", "error", err, "id", id)
		InternalServerError("Could not delete transaction").Write(w)
		return
	}

	NewResponse().
		TriggerLedgerChanged().
		TriggerNotification(NotifyWarning, "Transaction deleted!").
		BodyHTML(`<div class="success">Transaction deleted</div>`).
		Write(w)
}

// handleSummary renders the three aggregate figures.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	seq := s.book.All()

	data := struct {
		Income  string
		Expense string
		Balance string
	}{
		Income:  core.FormatINR(core.TotalIncome(seq).Cents),
		Expense: core.FormatINR(core.TotalExpense(seq).Cents),
		Balance: core.FormatINR(core.Balance(seq).Cents),
	}

	if err := s.templates.ExecuteTemplate(w, "summary.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "summary.html")
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

// handleTransactions renders the recent-transactions partial, optionally
// restricted to a year-month token.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	month := sanitizeInput(r.URL.Query().Get("month"))
	seq := core.FilterByMonth(s.book.All(), month)
	if len(seq) > s.recentLimit {
		seq = seq[:s.recentLimit]
	}

	type row struct {
		ID       int64
		Date     string
		Category string
		Amount   string
		Color    string
		Kind     string
	}
	data := struct {
		Rows []row
	}{}
	for _, t := range seq {
		data.Rows = append(data.Rows, row{
			ID:       t.ID,
			Date:     t.Date.Display(),
			Category: t.Category,
			Amount:   core.SignedINR(t),
			Color:    t.Color,
			Kind:     string(t.Kind),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "transactions.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "transactions.html")
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

// handleChartData serves the expense-breakdown dataset consumed by the
// chart script. An empty breakdown is flagged so the client can draw its
// static placeholder instead of an empty donut.
func (s *Server) handleChartData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	ds := core.ChartDataset(s.book.All())
	if len(ds.Labels) == 0 {
		_, _ = w.Write([]byte(`{"empty":true}`))
		return
	}
	if err := json.NewEncoder(w).Encode(ds); err != nil {
		slog.ErrorContext(r.Context(), "Chart data encode error", "error", err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	csv := export.CSV(s.book.All())
	filename := export.Filename(time.Now())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write([]byte(csv))

	slog.InfoContext(r.Context(), "Ledger exported", "filename", filename, "transactions", s.book.Len())
}

func (s *Server) handleDarkMode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	enabled := r.Form.Get("enabled") == "true" || r.Form.Get("enabled") == "on"
	if err := s.book.SetDarkMode(r.Context(), enabled); err != nil {
		slog.ErrorContext(r.Context(), "Dark mode persist error", "error", err)
		InternalServerError("Could not save preference").Write(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
