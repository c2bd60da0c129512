package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/lipinotes/backend/internal/auth"
	"github.com/lipinotes/backend/internal/storage/postgres"
)

// TestAPIIntegration exercises signup/login/notes/profile against a live
// Postgres database.
func TestAPIIntegration(t *testing.T) {
	if os.Getenv("RUN_API_INTEGRATION") != "true" {
		t.Skip("set RUN_API_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := postgres.NewStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close()

	tokens := auth.NewTokenManager(mustGetEnv(t, "SESSION_SECRET"), "lipinotes-integration", time.Hour)

	mux := http.NewServeMux()
	NewAuthHandler(store, tokens).Register(mux)
	NewNotesHandler(store, tokens).Register(mux)
	NewProfileHandler(store, tokens).Register(mux)

	ts := httptest.NewServer(mux)
	defer ts.Close()

	username := fmt.Sprintf("apitest_%d", time.Now().UnixNano())
	email := fmt.Sprintf("%s@example.com", username)
	password := fmt.Sprintf("Pass!%d", time.Now().UnixNano())

	signupBody := postExpect(t, ts.URL+"/api/signup", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, http.StatusCreated)

	loginBody := postExpect(t, ts.URL+"/api/login", "", map[string]string{
		"username": username,
		"password": password,
	}, http.StatusOK)
	token, _ := loginBody["token"].(string)
	if strings.TrimSpace(token) == "" {
		t.Fatal("login response missing token")
	}
	authz := "Bearer " + token

	postExpect(t, ts.URL+"/api/save_note", authz, map[string]string{
		"content": "integration note",
	}, http.StatusCreated)

	notesBody := getExpect(t, ts.URL+"/api/get_notes", authz, http.StatusOK)
	notes, _ := notesBody["notes"].([]any)
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	note := notes[0].(map[string]any)
	if note["content"] != "integration note" {
		t.Fatalf("unexpected note content: %v", note["content"])
	}

	profileBody := getExpect(t, ts.URL+"/api/get_profile", authz, http.StatusOK)
	profile, _ := profileBody["profile"].(map[string]any)
	if profile["username"] != username || profile["email"] != email {
		t.Fatalf("profile mismatch: got %+v", profile)
	}

	user, _ := signupBody["user"].(map[string]any)
	t.Logf("created account %s (id=%v), saved and listed a note, fetched profile", username, user["id"])
}

func postExpect(t *testing.T, url, authorization string, payload map[string]string, wantStatus int) map[string]any {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return doExpect(t, req, wantStatus)
}

func getExpect(t *testing.T, url, authorization string, wantStatus int) map[string]any {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return doExpect(t, req, wantStatus)
}

func doExpect(t *testing.T, req *http.Request, wantStatus int) map[string]any {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s status = %d, want %d", req.Method, req.URL.Path, resp.StatusCode, wantStatus)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func mustGetEnv(t *testing.T, key string) string {
	t.Helper()
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		t.Fatalf("%s is required", key)
	}
	return val
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
		"../../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
