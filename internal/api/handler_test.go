package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChasNicholls/spendlite/internal/rules"
	"github.com/ChasNicholls/spendlite/internal/state"
	"github.com/ChasNicholls/spendlite/internal/store"
)

const sampleStatement = `Account,Type,Date,Ref,Detail,Debit Amount,Credit Amount,Balance,Code,Long Description
123,EFTPOS,01/03/2024,REF1,,-45.00,,955.00,,Coffee COLES Sydney
123,EFTPOS,02/03/2024,REF2,,-80.00,,875.00,,SHELL SERVICE STATION
`

func newTestServer(t *testing.T) (*fiber.App, *state.App) {
	t.Helper()
	app := state.New(store.NewMemory(), 10, rules.DefaultRuleText)
	return New(app), app
}

func decodeResponse(t *testing.T, resp *http.Response) Response {
	t.Helper()
	defer resp.Body.Close()
	var out Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func importStatement(t *testing.T, f *fiber.App, csv string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "statement.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/import", &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp, err := f.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestHealth(t *testing.T) {
	f, _ := newTestServer(t)
	resp, err := f.Test(httptest.NewRequest(fiber.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestView_EmptyState(t *testing.T) {
	f, _ := newTestServer(t)
	resp, err := f.Test(httptest.NewRequest(fiber.MethodGet, "/api/view", nil))
	require.NoError(t, err)
	out := decodeResponse(t, resp)
	require.True(t, out.Success)
	require.NotNil(t, out.View)
	assert.Equal(t, 0, out.View.Summary.Count)
	assert.Equal(t, 1, out.View.Page.TotalPages)
}

func TestImport(t *testing.T) {
	f, app := newTestServer(t)
	resp := importStatement(t, f, sampleStatement)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeResponse(t, resp)
	require.True(t, out.Success)
	require.NotNil(t, out.View)
	assert.Equal(t, 2, out.View.Summary.Count)
	assert.Equal(t, []string{"2024-03"}, out.View.Months)

	require.Len(t, app.Transactions, 2)
	assert.Equal(t, "GROCERIES", app.Transactions[0].Category)
}

func TestImport_MissingFile(t *testing.T) {
	f, _ := newTestServer(t)
	req := httptest.NewRequest(fiber.MethodPost, "/api/import", strings.NewReader(""))
	resp, err := f.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := decodeResponse(t, resp)
	assert.False(t, out.Success)
	assert.NotEmpty(t, out.Error)
}

func TestImport_MalformedCSVAborts(t *testing.T) {
	f, app := newTestServer(t)
	// unterminated quote fails the CSV reader outright
	resp := importStatement(t, f, "a,b,\"unterminated\n")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	out := decodeResponse(t, resp)
	assert.False(t, out.Success)
	assert.Empty(t, app.Transactions)
}

func TestRules_GetAndPut(t *testing.T) {
	f, app := newTestServer(t)

	resp, err := f.Test(httptest.NewRequest(fiber.MethodGet, "/api/rules", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	text, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(text), "COLES => GROCERIES")

	body := strings.NewReader(`{"text":"MYSTERY => FUN"}`)
	req := httptest.NewRequest(fiber.MethodPut, "/api/rules", body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = f.Test(req)
	require.NoError(t, err)
	out := decodeResponse(t, resp)
	require.True(t, out.Success)
	assert.Equal(t, "MYSTERY => FUN", app.RuleText)
}

func TestRules_Upsert(t *testing.T) {
	f, app := newTestServer(t)

	req := httptest.NewRequest(fiber.MethodPost, "/api/rules/upsert",
		strings.NewReader(`{"keyword":"mystery","category":"fun"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := f.Test(req)
	require.NoError(t, err)
	out := decodeResponse(t, resp)
	require.True(t, out.Success)
	assert.Contains(t, app.RuleText, "MYSTERY => FUN")
}

func TestRules_UpsertRejectsEmpty(t *testing.T) {
	f, _ := newTestServer(t)
	req := httptest.NewRequest(fiber.MethodPost, "/api/rules/upsert",
		strings.NewReader(`{"keyword":"","category":"fun"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := f.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFilters_PartialUpdate(t *testing.T) {
	f, app := newTestServer(t)
	importStatement(t, f, sampleStatement)

	req := httptest.NewRequest(fiber.MethodPut, "/api/filters",
		strings.NewReader(`{"month":"2024-03"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := f.Test(req)
	require.NoError(t, err)
	out := decodeResponse(t, resp)
	require.True(t, out.Success)
	assert.Equal(t, "2024-03", app.Filter.Month)
	// absent fields stay untouched
	assert.Equal(t, "", app.Filter.Category)
	assert.Equal(t, "March 2024", out.View.MonthLabel)
}

func TestPageDelta(t *testing.T) {
	f, app := newTestServer(t)
	importStatement(t, f, sampleStatement)

	req := httptest.NewRequest(fiber.MethodPost, "/api/page/delta",
		strings.NewReader(`{"delta":1}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := f.Test(req)
	require.NoError(t, err)
	out := decodeResponse(t, resp)
	require.True(t, out.Success)
	// two transactions fit one page, so the tick is ignored
	assert.Equal(t, 1, app.Filter.Page)
	assert.Equal(t, 1, out.View.Page.Number)
}

func TestTotalsText(t *testing.T) {
	f, _ := newTestServer(t)
	importStatement(t, f, sampleStatement)

	resp, err := f.Test(httptest.NewRequest(fiber.MethodGet, "/api/totals.txt", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, "SpendLite Category Totals")
	// no filter set: the label falls back to the first transaction's month
	assert.Contains(t, text, "(March 2024)")
	assert.Contains(t, text, "Groceries")
	assert.Contains(t, text, "-125.00")
}
