package agilpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jfsanchez2k/webflow-ecommerce/internal/config"
)

const tokenTimeout = 30 * time.Second

// AuthError means the token exchange with the gateway failed. The reason is
// for the logs; callers surface a single generic message.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token exchange failed: %s: %v", e.Reason, e.Err)
	}
	return "token exchange failed: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

// Client talks to the Agilpay gateway. Configuration is read-only for the
// lifetime of the process.
type Client struct {
	cfg        config.Agilpay
	httpClient *http.Client
}

func NewClient(cfg config.Agilpay) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: tokenTimeout},
	}
}

// PaymentURL is where the browser submits the hosted-page form. The service
// itself never calls it.
func (c *Client) PaymentURL() string {
	return c.cfg.PaymentURL
}

type tokenRequest struct {
	GrantType    string  `json:"grant_type"`
	ClientID     string  `json:"client_id"`
	ClientSecret string  `json:"client_secret"`
	OrderID      string  `json:"orderId"`
	CustomerID   string  `json:"customerId"`
	Amount       float64 `json:"amount"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// FetchToken performs a single client-credentials exchange scoped to one
// order. There is no retry; any transport error, non-200 status, or missing
// access_token is an *AuthError. Callers pass a context detached from the
// inbound request so a dropped client connection does not cancel an exchange
// already in flight.
func (c *Client) FetchToken(ctx context.Context, orderID, customerID string, amount float64) (string, error) {
	body, err := json.Marshal(tokenRequest{
		GrantType:    "client_credentials",
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		OrderID:      orderID,
		CustomerID:   customerID,
		Amount:       amount,
	})
	if err != nil {
		return "", &AuthError{Reason: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, bytes.NewReader(body))
	if err != nil {
		return "", &AuthError{Reason: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &AuthError{Reason: "transport", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &AuthError{Reason: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", &AuthError{Reason: "malformed response", Err: err}
	}
	if tr.AccessToken == "" {
		return "", &AuthError{Reason: "access_token missing in response"}
	}
	return tr.AccessToken, nil
}
