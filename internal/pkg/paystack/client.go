package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/naijavibes/NaijaVibes/internal/pkg/env"
)

const defaultBaseURL = "https://api.paystack.co"

// Paystack's API answers initialize calls slower than verify calls, hence the
// asymmetric bounds. Exceeding a bound yields ErrTimeout, never a hang.
const (
	DefaultInitializeTimeout = 4 * time.Second
	DefaultVerifyTimeout     = 3 * time.Second
)

// ErrTimeout reports that an outbound gateway call exceeded its bound. It is
// distinct from a provider-reported failure and is safe to retry for verify
// calls (never for initialize with the same reference).
var ErrTimeout = errors.New("paystack: request timed out")

// GatewayError is a provider non-success HTTP status or an unparseable body.
type GatewayError struct {
	StatusCode int
	StatusText string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("paystack: gateway error: %d %s", e.StatusCode, e.StatusText)
}

// Client talks to the Paystack transaction API. It is an explicit value
// constructed once at startup and passed to whatever handles requests; there
// is deliberately no package level instance.
type Client struct {
	SecretKey string
	BaseURL   string

	InitializeTimeout time.Duration
	VerifyTimeout     time.Duration

	HTTPClient *http.Client
}

// NewClientFromEnv builds a client from PAYSTACK_* environment variables.
func NewClientFromEnv() *Client {
	return NewClient(
		strings.TrimSpace(env.GetEnv("PAYSTACK_SECRET_KEY", "")),
		strings.TrimRight(env.GetEnv("PAYSTACK_BASE_URL", defaultBaseURL), "/"),
	)
}

// NewClient builds a client with default timeouts.
func NewClient(secretKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		SecretKey:         secretKey,
		BaseURL:           strings.TrimRight(baseURL, "/"),
		InitializeTimeout: DefaultInitializeTimeout,
		VerifyTimeout:     DefaultVerifyTimeout,
		HTTPClient:        &http.Client{},
	}
}

// TransactionRequest is the body of an initialize call. Amount is in minor
// currency units (kobo); floats never touch money here.
type TransactionRequest struct {
	Email     string              `json:"email"`
	Amount    int64               `json:"amount"`
	Reference string              `json:"reference"`
	Metadata  TransactionMetadata `json:"metadata"`
}

// TransactionMetadata rides along with a transaction and comes back on verify.
type TransactionMetadata struct {
	UserID        string `json:"userId"`
	PlanTier      string `json:"subscriptionType"`
	BillingPeriod string `json:"plan"`
}

// InitializeResult carries the redirect target for the off-system payment.
type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// TransactionResult is the provider's answer to a verify call. It is untrusted
// input until this very call, which is why activation only ever follows a
// fresh verify round trip.
type TransactionResult struct {
	Success               bool
	ProviderTransactionID int64
	Status                string // pending | success | failed
	Amount                int64
	Currency              string
	Reference             string
	Metadata              TransactionMetadata
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID        int64  `json:"id"`
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		Metadata  struct {
			UserID        string `json:"userId"`
			PlanTier      string `json:"subscriptionType"`
			BillingPeriod string `json:"plan"`
		} `json:"metadata"`
	} `json:"data"`
}

// Initialize starts a transaction intent with the provider and returns the
// authorization URL the payer is redirected to. No retries happen here;
// a retry with the same reference would create a duplicate intent.
func (c *Client) Initialize(ctx context.Context, in TransactionRequest) (*InitializeResult, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, errors.New("PAYSTACK_SECRET_KEY is not configured")
	}

	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.initializeTimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var out initializeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &GatewayError{StatusCode: http.StatusOK, StatusText: "unparseable initialize response"}
	}
	if !out.Status || strings.TrimSpace(out.Data.AuthorizationURL) == "" {
		return nil, &GatewayError{StatusCode: http.StatusOK, StatusText: out.Message}
	}

	return &InitializeResult{
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
		Reference:        out.Data.Reference,
	}, nil
}

// Verify asks the provider for the authoritative state of a transaction.
// Safe to repeat for the same reference.
func (c *Client) Verify(ctx context.Context, reference string) (*TransactionResult, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, errors.New("PAYSTACK_SECRET_KEY is not configured")
	}
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return nil, errors.New("reference is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.verifyTimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/transaction/verify/"+url.PathEscape(ref), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Accept", "application/json")

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var out verifyResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &GatewayError{StatusCode: http.StatusOK, StatusText: "unparseable verify response"}
	}

	res := &TransactionResult{
		Success:               out.Status && out.Data.Status == "success",
		ProviderTransactionID: out.Data.ID,
		Status:                strings.TrimSpace(out.Data.Status),
		Amount:                out.Data.Amount,
		Currency:              out.Data.Currency,
		Reference:             out.Data.Reference,
		Metadata: TransactionMetadata{
			UserID:        out.Data.Metadata.UserID,
			PlanTier:      out.Data.Metadata.PlanTier,
			BillingPeriod: out.Data.Metadata.BillingPeriod,
		},
	}
	return res, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return nil, ErrTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GatewayError{StatusCode: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}
	}
	return body, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) initializeTimeout() time.Duration {
	if c.InitializeTimeout > 0 {
		return c.InitializeTimeout
	}
	return DefaultInitializeTimeout
}

func (c *Client) verifyTimeout() time.Duration {
	if c.VerifyTimeout > 0 {
		return c.VerifyTimeout
	}
	return DefaultVerifyTimeout
}
