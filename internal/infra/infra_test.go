package infra

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("missing Accept header")
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	body, status, err := DoGet(context.Background(), srv.URL, map[string]string{"Accept": "application/json"})
	if err != nil {
		t.Fatalf("DoGet: %v", err)
	}
	defer body.Close()

	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	data, _ := io.ReadAll(body)
	if string(data) != `{"ok":true}` {
		t.Errorf("body = %q", data)
	}
}

func TestDoGetNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, status, err := DoGet(context.Background(), srv.URL, nil)
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	if status != http.StatusForbidden {
		t.Errorf("status = %d", status)
	}
}

func TestDoPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content-type = %q", r.Header.Get("Content-Type"))
		}
		w.Write([]byte(`{"echo":"hi"}`))
	}))
	defer srv.Close()

	var out struct {
		Echo string `json:"echo"`
	}
	err := DoPostJSON(context.Background(), srv.URL, nil, map[string]string{"msg": "hi"}, &out)
	if err != nil {
		t.Fatalf("DoPostJSON: %v", err)
	}
	if out.Echo != "hi" {
		t.Errorf("echo = %q", out.Echo)
	}
}

func TestDoPostForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("grant_type") != "assertion grant" {
			t.Errorf("grant_type = %q", r.PostForm.Get("grant_type"))
		}
		w.Write([]byte(`{"access_token":"tok"}`))
	}))
	defer srv.Close()

	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := DoPostForm(context.Background(), srv.URL, map[string]string{"grant_type": "assertion grant"}, &out)
	if err != nil {
		t.Fatalf("DoPostForm: %v", err)
	}
	if out.AccessToken != "tok" {
		t.Errorf("access_token = %q", out.AccessToken)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, 50*time.Millisecond)

	ctx := context.Background()
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("second wait: %v", err)
	}

	// Bucket is empty; a cancelled context should unblock the wait.
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := rl.Wait(cancelled); err == nil {
		t.Error("expected context error on empty bucket")
	}

	// After the refill window a token is available again.
	time.Sleep(60 * time.Millisecond)
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("wait after refill: %v", err)
	}
}
