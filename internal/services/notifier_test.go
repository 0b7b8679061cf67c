package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GregMSThompson/expat-financier/internal/errs"
	"github.com/GregMSThompson/expat-financier/internal/models"
)

func TestSheetsNotifierPostsSnapshot(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSheetsNotifier(srv.URL, time.Second)
	err := n.Notify(context.Background(), models.Snapshot{
		UserID: "42", Name: "Alex", Job: "Engineer",
		Income: 10000, Expense: 6000, Savings: 1000, Emergency: 3000,
	})
	if err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}

	for _, key := range []string{"user_id", "name", "job", "income", "expense", "savings", "emergency"} {
		if _, ok := got[key]; !ok {
			t.Fatalf("payload missing %q: %v", key, got)
		}
	}
	if got["expense"] != 6000.0 {
		t.Fatalf("expense = %v, want 6000", got["expense"])
	}
}

func TestSheetsNotifierNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewSheetsNotifier(srv.URL, time.Second).Notify(context.Background(), models.Snapshot{UserID: "1"})

	var extErr *errs.ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if !extErr.Transient {
		t.Fatalf("5xx should be marked transient")
	}
}

func TestSheetsNotifierTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	err := NewSheetsNotifier(srv.URL, 50*time.Millisecond).Notify(context.Background(), models.Snapshot{UserID: "1"})
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("Notify blocked for %v", elapsed)
	}
}

func TestSheetsNotifierDisabled(t *testing.T) {
	if err := NewSheetsNotifier("", 0).Notify(context.Background(), models.Snapshot{}); err != nil {
		t.Fatalf("disabled notifier should be a no-op, got %v", err)
	}
}
