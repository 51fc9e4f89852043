package agilpay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfsanchez2k/webflow-ecommerce/internal/config"
)

func testConfig(tokenURL string) config.Agilpay {
	return config.Agilpay{
		ClientID:     "API-001",
		ClientSecret: "Dynapay",
		MerchantKey:  "TEST-001",
		TokenURL:     tokenURL,
		PaymentURL:   "https://sandbox-webpay.agilpay.net/Payment",
	}
}

func TestFetchToken(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok123"})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	token, err := client.FetchToken(context.Background(), "order-1", "juan@example.com", 20.0)
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)

	assert.Equal(t, "client_credentials", got["grant_type"])
	assert.Equal(t, "API-001", got["client_id"])
	assert.Equal(t, "Dynapay", got["client_secret"])
	assert.Equal(t, "order-1", got["orderId"])
	assert.Equal(t, "juan@example.com", got["customerId"])
	assert.Equal(t, 20.0, got["amount"])
}

func TestFetchTokenNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.FetchToken(context.Background(), "order-1", "juan@example.com", 20.0)
	require.Error(t, err)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "status 503", authErr.Reason)
}

func TestFetchTokenMissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token_type": "bearer"})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.FetchToken(context.Background(), "order-1", "juan@example.com", 20.0)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "access_token missing in response", authErr.Reason)
}

func TestFetchTokenMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.FetchToken(context.Background(), "order-1", "juan@example.com", 20.0)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "malformed response", authErr.Reason)
}

func TestFetchTokenTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(testConfig(srv.URL))
	_, err := client.FetchToken(context.Background(), "order-1", "juan@example.com", 20.0)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "transport", authErr.Reason)
}
