package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateIntentSendsFormAndAuth(t *testing.T) {
	var gotPath, gotAmount, gotCurrency, gotDest, gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotAmount = r.PostFormValue("amount")
		gotCurrency = r.PostFormValue("currency")
		gotDest = r.PostFormValue("transfer_data[destination]")
		gotUser, _, _ = r.BasicAuth()
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":            "pi_123",
			"client_secret": "pi_123_secret",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "sk_test_abc")
	intent, err := c.CreateIntent(context.Background(), 8500, "acct_vendor")
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if intent.ID != "pi_123" || intent.ClientSecret != "pi_123_secret" {
		t.Errorf("intent = %+v", intent)
	}
	if gotPath != "/v1/payment_intents" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAmount != "8500" || gotCurrency != "usd" {
		t.Errorf("amount=%q currency=%q", gotAmount, gotCurrency)
	}
	if gotDest != "acct_vendor" {
		t.Errorf("destination = %q, want acct_vendor", gotDest)
	}
	if gotUser != "sk_test_abc" {
		t.Errorf("basic auth user = %q, want the secret key", gotUser)
	}
}

func TestCreateIntentOmitsDestinationForPlatform(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if _, ok := r.PostForm["transfer_data[destination]"]; ok {
			t.Error("platform charges must not carry a transfer destination")
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "pi_1", "client_secret": "s"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "sk_test_abc")
	if _, err := c.CreateIntent(context.Background(), 100, ""); err != nil {
		t.Fatalf("create intent: %v", err)
	}
}

func TestConfirmIntentStatusMapping(t *testing.T) {
	cases := []struct {
		remote string
		want   Status
	}{
		{"succeeded", StatusSucceeded},
		{"requires_action", StatusRequiresAction},
		{"canceled", StatusCanceled},
		{"processing", StatusFailed}, // unknown strings are not confirmed
	}
	for _, tc := range cases {
		t.Run(tc.remote, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/payment_intents/pi_9/confirm" {
					t.Errorf("path = %q", r.URL.Path)
				}
				_ = json.NewEncoder(w).Encode(map[string]string{"id": "pi_9", "status": tc.remote})
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, "sk_test_abc")
			status, err := c.ConfirmIntent(context.Background(), "pi_9", "pm_card")
			if err != nil {
				t.Fatalf("confirm: %v", err)
			}
			if status != tc.want {
				t.Errorf("status = %q, want %q", status, tc.want)
			}
		})
	}
}

func TestConfirmIntentHTTPErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no such intent"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "sk_test_abc")
	if _, err := c.ConfirmIntent(context.Background(), "pi_missing", "pm_card"); err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
}
