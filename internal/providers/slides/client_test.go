package slides

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestCredentials generates a throwaway RSA key and writes a
// service-account file whose token_uri points at tokenURL.
func writeTestCredentials(t *testing.T, tokenURL string) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	creds := map[string]string{
		"client_email": "proposal-bot@test.iam.gserviceaccount.com",
		"private_key":  string(keyPEM),
		"token_uri":    tokenURL,
	}
	data, _ := json.Marshal(creds)

	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}
	return path
}

func newTokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if gt := r.PostForm.Get("grant_type"); gt != "urn:ietf:params:oauth:grant-type:jwt-bearer" {
			t.Errorf("grant_type = %q", gt)
		}
		if r.PostForm.Get("assertion") == "" {
			t.Error("missing assertion")
		}
		fmt.Fprint(w, `{"access_token": "test-token", "expires_in": 3600}`)
	}))
}

func TestTokenSource(t *testing.T) {
	tokenSrv := newTokenServer(t)
	defer tokenSrv.Close()

	ts, err := NewTokenSource(writeTestCredentials(t, tokenSrv.URL))
	if err != nil {
		t.Fatalf("NewTokenSource: %v", err)
	}

	tok, err := ts.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok != "test-token" {
		t.Errorf("token = %q", tok)
	}

	// Second call reuses the cached token without hitting the server.
	tokenSrv.Close()
	tok2, err := ts.Token(context.Background())
	if err != nil {
		t.Fatalf("cached Token: %v", err)
	}
	if tok2 != "test-token" {
		t.Errorf("cached token = %q", tok2)
	}
}

func TestTokenSourceBadCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	os.WriteFile(path, []byte(`{"client_email": ""}`), 0600)

	if _, err := NewTokenSource(path); err == nil {
		t.Fatal("expected error for incomplete credentials")
	}
	if _, err := NewTokenSource(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReplaceAllText(t *testing.T) {
	tokenSrv := newTokenServer(t)
	defer tokenSrv.Close()

	var gotBody batchUpdateRequest
	slidesSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/presentations/deck-123:batchUpdate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		fmt.Fprint(w, `{}`)
	}))
	defer slidesSrv.Close()

	ts, err := NewTokenSource(writeTestCredentials(t, tokenSrv.URL))
	if err != nil {
		t.Fatalf("NewTokenSource: %v", err)
	}
	c := NewClient(ts)
	c.slidesBaseURL = slidesSrv.URL

	reps := []Replacement{
		{Token: "{{ADDRESS}}", Value: "123 Main St"},
		{Token: "{{SYSTEM_SIZE}}", Value: "8.5 kW"},
	}
	if err := c.ReplaceAllText(context.Background(), "deck-123", reps); err != nil {
		t.Fatalf("ReplaceAllText: %v", err)
	}

	if len(gotBody.Requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(gotBody.Requests))
	}
	first := gotBody.Requests[0]["replaceAllText"].(map[string]any)
	contains := first["containsText"].(map[string]any)
	if contains["text"] != "{{ADDRESS}}" {
		t.Errorf("first token = %v", contains["text"])
	}
	if first["replaceText"] != "123 Main St" {
		t.Errorf("first value = %v", first["replaceText"])
	}
}

func TestExportPDF(t *testing.T) {
	tokenSrv := newTokenServer(t)
	defer tokenSrv.Close()

	driveSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/drive/v3/files/deck-123/export" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if mt := r.URL.Query().Get("mimeType"); mt != "application/pdf" {
			t.Errorf("mimeType = %q", mt)
		}
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer driveSrv.Close()

	ts, err := NewTokenSource(writeTestCredentials(t, tokenSrv.URL))
	if err != nil {
		t.Fatalf("NewTokenSource: %v", err)
	}
	c := NewClient(ts)
	c.driveBaseURL = driveSrv.URL

	data, err := c.ExportPDF(context.Background(), "deck-123")
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("unexpected export payload %q", data)
	}
}

func TestPresentationURL(t *testing.T) {
	want := "https://docs.google.com/presentation/d/deck-123/edit?usp=sharing"
	if got := PresentationURL("deck-123"); got != want {
		t.Errorf("PresentationURL = %q, want %q", got, want)
	}
}
