package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lipinotes/backend/internal/auth"
	"github.com/lipinotes/backend/internal/models"
)

func testTokenManager() *auth.TokenManager {
	return auth.NewTokenManager("handler-test-secret", "handler-test", time.Hour)
}

func createAccount(t *testing.T, store *fakeStore, username, email string) models.Account {
	t.Helper()
	hash, err := hashPassword("pw-" + username)
	require.NoError(t, err)
	account, err := store.CreateAccount(context.Background(), models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	require.NoError(t, err)
	return account
}

func bearerFor(t *testing.T, tokens *auth.TokenManager, account models.Account) string {
	t.Helper()
	token, err := tokens.Generate(account)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, handler http.Handler, method, target, authorization string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
