// Package gateway talks to the third-party payment processor.  The
// console never sees card data; it creates payment intents server-side
// and submits intent ids for confirmation, while the processor handles
// everything cryptographic.  The Client interface is what the payment
// workflow consumes, so tests can substitute a fake processor.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Status is a terminal (or near-terminal) intent state reported by the
// processor after confirmation.
type Status string

const (
	StatusSucceeded      Status = "succeeded"
	StatusFailed         Status = "failed"
	StatusRequiresAction Status = "requires_action"
	StatusCanceled       Status = "canceled"
)

// Intent is a processor-side object representing an authorized but not
// yet confirmed attempt to move funds.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// Client creates and confirms payment intents.
type Client interface {
	// CreateIntent registers an intent for the given amount in cents.
	// routingAccount, when non-empty, is the vendor's connected account
	// the funds should land in; empty routes to the platform account.
	CreateIntent(ctx context.Context, amountCents int64, routingAccount string) (Intent, error)
	// ConfirmIntent submits the intent with the caller-collected payment
	// method and returns the processor's resulting status.
	ConfirmIntent(ctx context.Context, intentID, paymentMethod string) (Status, error)
}

// HTTPClient is the production Client implementation.  It speaks the
// processor's REST API with form-encoded bodies and basic auth, the
// same shape the processor's own SDK uses under the hood.
type HTTPClient struct {
	baseURL   string
	secretKey string
	hc        *http.Client
}

// NewHTTPClient returns an HTTPClient for the given API base URL and
// secret key.
func NewHTTPClient(baseURL, secretKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		hc:        &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateIntent implements Client.
func (c *HTTPClient) CreateIntent(ctx context.Context, amountCents int64, routingAccount string) (Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", "usd")
	if routingAccount != "" {
		form.Set("transfer_data[destination]", routingAccount)
	}
	var intent Intent
	if err := c.post(ctx, "/v1/payment_intents", form, &intent); err != nil {
		return Intent{}, err
	}
	return intent, nil
}

// ConfirmIntent implements Client.
func (c *HTTPClient) ConfirmIntent(ctx context.Context, intentID, paymentMethod string) (Status, error) {
	form := url.Values{}
	form.Set("payment_method", paymentMethod)
	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	path := "/v1/payment_intents/" + url.PathEscape(intentID) + "/confirm"
	if err := c.post(ctx, path, form, &out); err != nil {
		return "", err
	}
	switch Status(out.Status) {
	case StatusSucceeded, StatusFailed, StatusRequiresAction, StatusCanceled:
		return Status(out.Status), nil
	default:
		// unknown status strings are treated as not confirmed
		return StatusFailed, nil
	}
}

// post sends one form-encoded request and decodes the JSON response.
// Basic auth: username = secret key, empty password.
func (c *HTTPClient) post(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.secretKey, "")

	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("gateway %s: %s (%d)", path, string(body), res.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse gateway response: %w", err)
	}
	return nil
}
