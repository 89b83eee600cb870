package paystack_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naijavibes/NaijaVibes/internal/pkg/paystack"
)

func newTestClient(baseURL string) *paystack.Client {
	c := paystack.NewClient("sk_test_key", baseURL)
	c.InitializeTimeout = 200 * time.Millisecond
	c.VerifyTimeout = 200 * time.Millisecond
	return c
}

func TestClientInitialize(t *testing.T) {
	t.Run("posts the transaction and returns the authorization url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/transaction/initialize", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_key", r.Header.Get("Authorization"))

			var req paystack.TransactionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ada@example.com", req.Email)
			assert.Equal(t, int64(250000), req.Amount)
			assert.Equal(t, "premium", req.Metadata.PlanTier)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/abc","access_code":"abc","reference":"` + req.Reference + `"}}`))
		}))
		defer srv.Close()

		res, err := newTestClient(srv.URL).Initialize(context.Background(), paystack.TransactionRequest{
			Email:     "ada@example.com",
			Amount:    250000,
			Reference: "premium_1_1700000000000_aabbcc",
			Metadata:  paystack.TransactionMetadata{UserID: "1", PlanTier: "premium", BillingPeriod: "monthly"},
		})

		require.NoError(t, err)
		assert.Equal(t, "https://checkout.paystack.com/abc", res.AuthorizationURL)
		assert.Equal(t, "premium_1_1700000000000_aabbcc", res.Reference)
	})

	t.Run("maps a slow provider to ErrTimeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(time.Second)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Initialize(context.Background(), paystack.TransactionRequest{
			Email: "ada@example.com", Amount: 250000, Reference: "ref",
		})

		assert.ErrorIs(t, err, paystack.ErrTimeout)
	})

	t.Run("maps a non-2xx status to GatewayError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Initialize(context.Background(), paystack.TransactionRequest{
			Email: "ada@example.com", Amount: 250000, Reference: "ref",
		})

		var gerr *paystack.GatewayError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, http.StatusUnauthorized, gerr.StatusCode)
	})

	t.Run("treats a declined initialize as GatewayError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":false,"message":"Invalid key"}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Initialize(context.Background(), paystack.TransactionRequest{
			Email: "ada@example.com", Amount: 250000, Reference: "ref",
		})

		var gerr *paystack.GatewayError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, "Invalid key", gerr.StatusText)
	})

	t.Run("refuses to run without a secret key", func(t *testing.T) {
		c := paystack.NewClient("", "http://unused")
		_, err := c.Initialize(context.Background(), paystack.TransactionRequest{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, paystack.ErrTimeout)
	})
}

func TestClientVerify(t *testing.T) {
	t.Run("returns the transaction state", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/transaction/verify/premium_9_1700000000000_aabbcc", r.URL.Path)

			w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"id":12345,"status":"success","reference":"premium_9_1700000000000_aabbcc","amount":250000,"currency":"NGN","metadata":{"userId":"9","subscriptionType":"premium","plan":"monthly"}}}`))
		}))
		defer srv.Close()

		res, err := newTestClient(srv.URL).Verify(context.Background(), "premium_9_1700000000000_aabbcc")

		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "success", res.Status)
		assert.Equal(t, int64(12345), res.ProviderTransactionID)
		assert.Equal(t, int64(250000), res.Amount)
		assert.Equal(t, "9", res.Metadata.UserID)
	})

	t.Run("reports non-success status without error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"id":1,"status":"failed","reference":"ref","amount":250000,"currency":"NGN"}}`))
		}))
		defer srv.Close()

		res, err := newTestClient(srv.URL).Verify(context.Background(), "ref")

		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "failed", res.Status)
	})

	t.Run("maps an unknown reference to GatewayError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Verify(context.Background(), "no-such-ref")

		var gerr *paystack.GatewayError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, http.StatusNotFound, gerr.StatusCode)
	})

	t.Run("maps a slow provider to ErrTimeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(time.Second)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Verify(context.Background(), "ref")

		assert.ErrorIs(t, err, paystack.ErrTimeout)
	})

	t.Run("rejects an empty reference before any network call", func(t *testing.T) {
		c := newTestClient("http://127.0.0.1:1")
		_, err := c.Verify(context.Background(), "  ")
		require.Error(t, err)
		assert.False(t, errors.Is(err, paystack.ErrTimeout))
	})
}
