package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasminC/BankingApp/internal/adapter/middleware"
	"github.com/hasminC/BankingApp/internal/core/domain"
	"github.com/hasminC/BankingApp/internal/core/ledger"
)

func newTestApp() (*fiber.App, *ledger.Ledger) {
	eng := ledger.New()

	accountHandler := &AccountHandler{Ledger: eng}
	transferHandler := &TransferHandler{Ledger: eng}
	notificationHandler := &NotificationHandler{Ledger: eng}

	app := fiber.New()
	api := app.Group("/v1")
	api.Get("/accounts", accountHandler.ListAccounts)
	api.Get("/accounts/:id", accountHandler.GetAccount)
	api.Post("/transfers/validate", transferHandler.ValidateTransfer)
	api.Post("/transfers", middleware.Idempotency(), transferHandler.MakeTransfer)
	api.Get("/transactions", transferHandler.GetHistory)
	api.Get("/notifications", notificationHandler.GetInbox)
	api.Get("/limits", transferHandler.GetLimits)

	return app, eng
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func transferBody(src, destType, dest, external, amount string) map[string]string {
	return map[string]string{
		"source_account_id":       src,
		"destination_type":        destType,
		"destination_account_id":  dest,
		"external_account_number": external,
		"amount":                  amount,
	}
}

func TestMakeTransferHappyPath(t *testing.T) {
	app, eng := newTestApp()

	resp, err := app.Test(jsonRequest(t, "POST", "/v1/transfers",
		transferBody("A", domain.TransferOwn, "B", "", "500")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var txn domain.Transaction
	decodeBody(t, resp, &txn)
	assert.True(t, strings.HasPrefix(txn.ID, "TXN"))
	assert.Equal(t, domain.StatusSuccessful, txn.Status)
	assert.Equal(t, "500", txn.Amount.String())

	acc, ok := eng.Account("A")
	require.True(t, ok)
	assert.Equal(t, "9500", acc.Balance.String())
}

func TestMakeTransferValidationError(t *testing.T) {
	app, eng := newTestApp()

	resp, err := app.Test(jsonRequest(t, "POST", "/v1/transfers",
		transferBody("C", domain.TransferOwn, "A", "", "3000")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Insufficient balance in source account", body["error"])
	assert.Empty(t, eng.Transactions())
}

func TestValidateEndpointDoesNotMutate(t *testing.T) {
	app, eng := newTestApp()

	resp, err := app.Test(jsonRequest(t, "POST", "/v1/transfers/validate",
		transferBody("A", domain.TransferExternal, "", "9999999999", "200")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Valid bool   `json:"valid"`
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	assert.False(t, body.Valid)
	assert.Equal(t, "Invalid destination account number", body.Error)
	assert.Empty(t, eng.Transactions())

	resp, err = app.Test(jsonRequest(t, "POST", "/v1/transfers/validate",
		transferBody("A", domain.TransferOwn, "B", "", "500")))
	require.NoError(t, err)
	decodeBody(t, resp, &body)
	assert.True(t, body.Valid)
	assert.Empty(t, eng.Transactions())
}

func TestTransferIdempotentReplay(t *testing.T) {
	app, eng := newTestApp()

	send := func() *http.Response {
		req := jsonRequest(t, "POST", "/v1/transfers",
			transferBody("A", domain.TransferOwn, "B", "", "500"))
		req.Header.Set("Idempotency-Key", "transfer-001")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	first := send()
	assert.Equal(t, http.StatusCreated, first.StatusCode)
	var firstTxn domain.Transaction
	decodeBody(t, first, &firstTxn)

	second := send()
	assert.Equal(t, http.StatusCreated, second.StatusCode)
	assert.Equal(t, "true", second.Header.Get("X-Idempotency-Hit"))
	var secondTxn domain.Transaction
	decodeBody(t, second, &secondTxn)

	assert.Equal(t, firstTxn.ID, secondTxn.ID)

	// Only one transfer actually happened.
	assert.Len(t, eng.Transactions(), 1)
	acc, _ := eng.Account("A")
	assert.Equal(t, "9500", acc.Balance.String())
}

func TestListAccounts(t *testing.T) {
	app, _ := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/accounts", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Accounts []domain.Account `json:"accounts"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Accounts, 3)
	assert.Equal(t, "A", body.Accounts[0].ID)
	assert.Equal(t, "10000", body.Accounts[0].Balance.String())
}

func TestGetAccountNotFound(t *testing.T) {
	app, _ := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/accounts/Z", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInboxEndpoint(t *testing.T) {
	app, eng := newTestApp()

	_, err := eng.ProcessTransfer(ledger.TransferInput{
		SourceID: "A", DestType: domain.TransferExternal,
		ExternalAccount: "1234567890", Amount: "200",
	})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/notifications", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		To            string                     `json:"to"`
		Count         int                        `json:"count"`
		Notifications []domain.EmailNotification `json:"notifications"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, ledger.DefaultUserEmail, body.To)
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, "Fund Transfer Confirmation", body.Notifications[0].Subject)
}

func TestLimitsEndpoint(t *testing.T) {
	app, eng := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/limits", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		MinAmount             string   `json:"min_amount"`
		MaxAmount             string   `json:"max_amount"`
		ValidExternalAccounts []string `json:"valid_external_accounts"`
		UserEmail             string   `json:"user_email"`
		SessionID             string   `json:"session_id"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "100", body.MinAmount)
	assert.Equal(t, "50000", body.MaxAmount)
	assert.Equal(t, []string{"1234567890", "9876543210", "5678901234", "7777888899"}, body.ValidExternalAccounts)
	assert.Equal(t, ledger.DefaultUserEmail, body.UserEmail)
	assert.Equal(t, eng.SessionID().String(), body.SessionID)
}

func TestMakeTransferBadJSON(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest("POST", "/v1/transfers", strings.NewReader("{bad json}"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
