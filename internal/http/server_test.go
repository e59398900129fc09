package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financeflow/internal/core"
	"financeflow/internal/kv/memory"
	"financeflow/internal/ledger"
	"financeflow/internal/service"
)

// fixedNow keeps "current month" views stable across test runs.
var fixedNow = time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store, err := ledger.New(context.Background(), memory.New(),
		ledger.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	svc := service.NewLedgerService(store, nil)
	srv := NewServer(":0", svc, WithClock(func() time.Time { return fixedNow }))
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv
}

func doRequest(srv *Server, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func saveTransaction(t *testing.T, srv *Server, description, amount, txType, category, date string) {
	t.Helper()
	rec := doRequest(srv, http.MethodPost, "/transactions/save", url.Values{
		"description": {description},
		"amount":      {amount},
		"type":        {txType},
		"category":    {category},
		"date":        {date},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func triggers(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	header := rec.Header().Get("HX-Trigger")
	require.NotEmpty(t, header)
	var parsed map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(header), &parsed))
	return parsed
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = doRequest(srv, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", rec.Body.String())
}

func TestPagesRender(t *testing.T) {
	srv := newTestServer(t)

	pages := []struct {
		path string
		want string
	}{
		{"/", "Painel"},
		{"/transactions", "Transações"},
		{"/reports", "Relatórios"},
		{"/settings", "Configurações"},
	}
	for _, page := range pages {
		t.Run(page.path, func(t *testing.T) {
			rec := doRequest(srv, http.MethodGet, page.path, nil)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), page.want)
		})
	}
}

func TestUnknownPathIs404(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/", nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'self'")
}

func TestSaveTransaction(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/transactions/save", url.Values{
		"description": {"Mercado"},
		"amount":      {"150,50"},
		"type":        {"expense"},
		"category":    {"Alimentação"},
		"date":        {"2024-05-10"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	fired := triggers(t, rec)
	assert.Contains(t, fired, "transaction:saved")
	assert.Contains(t, fired, "form:reset")
	assert.Contains(t, fired, "show-notification")

	list := doRequest(srv, http.MethodGet, "/ui/transaction-list", nil)
	assert.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "Mercado")
	assert.Contains(t, list.Body.String(), "R$ 150,50")
}

func TestSaveTransactionValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		form url.Values
	}{
		{"missing description", url.Values{
			"amount": {"10"}, "type": {"expense"}, "category": {"Outros"}, "date": {"2024-05-10"},
		}},
		{"missing amount", url.Values{
			"description": {"x"}, "type": {"expense"}, "category": {"Outros"}, "date": {"2024-05-10"},
		}},
		{"bad amount", url.Values{
			"description": {"x"}, "amount": {"abc"}, "type": {"expense"}, "category": {"Outros"}, "date": {"2024-05-10"},
		}},
		{"bad type", url.Values{
			"description": {"x"}, "amount": {"10"}, "type": {"transfer"}, "category": {"Outros"}, "date": {"2024-05-10"},
		}},
		{"bad date", url.Values{
			"description": {"x"}, "amount": {"10"}, "type": {"expense"}, "category": {"Outros"}, "date": {"10/05/2024"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(srv, http.MethodPost, "/transactions/save", tt.form)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
}

func TestSaveTransactionRequiresPOST(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/transactions/save", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))
}

func TestUpdateTransaction(t *testing.T) {
	srv := newTestServer(t)
	saveTransaction(t, srv, "Mercado", "100", "expense", "Alimentação", "2024-05-10")

	rec := doRequest(srv, http.MethodPost, "/transactions/save", url.Values{
		"id":          {"1"},
		"description": {"Mercado da esquina"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	list := doRequest(srv, http.MethodGet, "/ui/transaction-list", nil)
	body := list.Body.String()
	assert.Contains(t, body, "Mercado da esquina")
	assert.Contains(t, body, "R$ 100,00") // untouched fields survive
}

func TestUpdateUnknownTransactionWarns(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/transactions/save", url.Values{
		"id":          {"42"},
		"description": {"fantasma"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	fired := triggers(t, rec)
	assert.Contains(t, fired, "show-notification")
	assert.NotContains(t, fired, "transaction:saved")
	assert.Contains(t, string(fired["show-notification"]), "warning")
}

func TestDeleteTransaction(t *testing.T) {
	srv := newTestServer(t)
	saveTransaction(t, srv, "Mercado", "100", "expense", "Alimentação", "2024-05-10")

	rec := doRequest(srv, http.MethodPost, "/transactions/delete", url.Values{"id": {"1"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, triggers(t, rec), "transaction:deleted")

	list := doRequest(srv, http.MethodGet, "/ui/transaction-list", nil)
	assert.Contains(t, list.Body.String(), "Nenhuma transação registrada")
}

func TestDeleteTransactionBadID(t *testing.T) {
	srv := newTestServer(t)

	for _, id := range []string{"", "abc", "0", "-3"} {
		rec := doRequest(srv, http.MethodPost, "/transactions/delete", url.Values{"id": {id}})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "id=%q", id)
	}
}

func TestDashboardStatsPartial(t *testing.T) {
	srv := newTestServer(t)
	saveTransaction(t, srv, "Salário", "3000", "income", "Salário", "2024-05-01")
	saveTransaction(t, srv, "Mercado", "200", "expense", "Alimentação", "2024-05-10")
	saveTransaction(t, srv, "Mês passado", "999", "expense", "Outros", "2024-04-10")

	rec := doRequest(srv, http.MethodGet, "/ui/dashboard-stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "R$ 3000,00") // income, current month only
	assert.Contains(t, body, "R$ 200,00")
	assert.Contains(t, body, "R$ 2800,00") // balance excludes April's expense
	assert.Contains(t, body, "Alimentação")
	assert.Contains(t, body, "Abr") // April still shows in the trend
}

func TestReportPartial(t *testing.T) {
	srv := newTestServer(t)
	saveTransaction(t, srv, "Salário", "3000", "income", "Salário", "2024-05-01")
	saveTransaction(t, srv, "Mercado", "200", "expense", "Alimentação", "2024-05-10")

	rec := doRequest(srv, http.MethodGet, "/ui/report?type=expense", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Mercado")
	assert.NotContains(t, body, "Salário")
	assert.Contains(t, body, "1 transações")
}

func TestReportDateFilter(t *testing.T) {
	srv := newTestServer(t)
	saveTransaction(t, srv, "Dentro", "10", "expense", "Outros", "2024-05-10")
	saveTransaction(t, srv, "Fora", "10", "expense", "Outros", "2024-06-10")

	rec := doRequest(srv, http.MethodGet, "/ui/report?dateStart=2024-05-01&dateEnd=2024-05-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dentro")
	assert.NotContains(t, rec.Body.String(), "Fora")
}

func TestSaveGoal(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/settings/goal", url.Values{"monthlyGoal": {"750,00"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="goal-value"`)
	assert.Contains(t, rec.Body.String(), "R$ 750,00")
	assert.Contains(t, triggers(t, rec), "settings:updated")
}

func TestAddCategory(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/settings/categories/add", url.Values{"name": {"Viagem"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Viagem")
	assert.Contains(t, rec.Header().Get("HX-Trigger"), "settings:updated")
}

func TestAddDuplicateCategory(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/settings/categories/add", url.Values{"name": {"Alimentação"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Categoria já existe")
}

func TestDeleteCategoryKeepsTransactions(t *testing.T) {
	srv := newTestServer(t)
	saveTransaction(t, srv, "Mercado", "100", "expense", "Alimentação", "2024-05-10")

	rec := doRequest(srv, http.MethodPost, "/settings/categories/delete", url.Values{"name": {"Alimentação"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Alimentação")

	// The ledger entry keeps its now-orphaned category name.
	list := doRequest(srv, http.MethodGet, "/ui/transaction-list", nil)
	assert.Contains(t, list.Body.String(), "Alimentação")
}

func TestRateLimitMutations(t *testing.T) {
	srv := newTestServer(t)

	var last *httptest.ResponseRecorder
	for i := 0; i < 70; i++ {
		last = doRequest(srv, http.MethodPost, "/transactions/delete", url.Values{"id": {"1"}})
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, "60", last.Header().Get("Retry-After"))

	// GETs are never rate limited.
	rec := doRequest(srv, http.MethodGet, "/ui/transaction-list", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "R$ 0,00"},
		{150.5, "R$ 150,50"},
		{1234.56, "R$ 1234,56"},
		{-42, "-R$ 42,00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBRL(tt.value))
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12,3%", formatPercent(12.34))
	assert.Equal(t, "100,0%", formatPercent(100))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "Mercado", sanitizeInput("  Mercado  "))
	assert.Equal(t, "abc", sanitizeInput("a\x00b\x1bc"))
}

func TestParseTransactionFormCreateDefaults(t *testing.T) {
	input, errResp := parseTransactionForm(url.Values{
		"description": {"Café"},
		"amount":      {"12,00"},
		"type":        {"expense"},
		"category":    {"Alimentação"},
		"date":        {"2024-05-10"},
	})
	require.Nil(t, errResp)
	assert.EqualValues(t, 0, input.ID)
	require.NotNil(t, input.Type)
	assert.Equal(t, core.Expense, *input.Type)
	require.NotNil(t, input.Date)
	assert.Equal(t, core.NewCalendarDate(2024, 5, 10), *input.Date)
}

func TestParseTransactionFormPartialUpdate(t *testing.T) {
	input, errResp := parseTransactionForm(url.Values{
		"id":     {"3"},
		"amount": {"99,90"},
	})
	require.Nil(t, errResp)
	assert.EqualValues(t, 3, input.ID)
	require.NotNil(t, input.Amount)
	assert.Nil(t, input.Description)
	assert.Nil(t, input.Type)
	assert.Nil(t, input.Date)
}
