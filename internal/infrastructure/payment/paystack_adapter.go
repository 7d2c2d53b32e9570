package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lincyaw/storefront/internal/application/payment"
	"github.com/lincyaw/storefront/internal/infrastructure/config"
)

const (
	initializePath = "/transaction/initialize"
	verifyPath     = "/transaction/verify/%s"
)

// PaystackAdapter implements the payment Gateway against the Paystack
// HTTP API
type PaystackAdapter struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

var _ payment.Gateway = (*PaystackAdapter)(nil)

func NewPaystackAdapter(cfg config.PaymentConfig) (*PaystackAdapter, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("paystack: secret key is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("paystack: base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &PaystackAdapter{
		baseURL:    cfg.BaseURL,
		secretKey:  cfg.SecretKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type initializeBody struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency,omitempty"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callback_url,omitempty"`
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	PaidAt    string `json:"paid_at"`
	Channel   string `json:"channel"`
}

// InitializeTransaction creates a pending transaction and returns the
// hosted checkout URL
func (a *PaystackAdapter) InitializeTransaction(ctx context.Context, req payment.InitializeRequest) (*payment.InitializeResult, error) {
	body := initializeBody{
		Email:       req.Email,
		Amount:      req.AmountMinor,
		Currency:    req.Currency,
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("paystack: failed to marshal request: %w", err)
	}

	respBody, err := a.doRequest(ctx, http.MethodPost, initializePath, bodyBytes)
	if err != nil {
		return nil, err
	}

	var data initializeData
	if err := json.Unmarshal(respBody, &data); err != nil {
		return nil, fmt.Errorf("paystack: failed to parse initialize response: %w", err)
	}

	return &payment.InitializeResult{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// VerifyTransaction fetches the authoritative state of a transaction
func (a *PaystackAdapter) VerifyTransaction(ctx context.Context, reference string) (*payment.VerifyResult, error) {
	path := fmt.Sprintf(verifyPath, url.PathEscape(reference))
	respBody, err := a.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var data verifyData
	if err := json.Unmarshal(respBody, &data); err != nil {
		return nil, fmt.Errorf("paystack: failed to parse verify response: %w", err)
	}

	result := &payment.VerifyResult{
		Status:      payment.TransactionStatus(data.Status),
		Reference:   data.Reference,
		AmountMinor: data.Amount,
		Currency:    data.Currency,
		Channel:     data.Channel,
	}
	if data.PaidAt != "" {
		if paidAt, err := time.Parse(time.RFC3339, data.PaidAt); err == nil {
			result.PaidAt = &paidAt
		}
	}
	return result, nil
}

// doRequest performs an authenticated API call and unwraps the
// response envelope
func (a *PaystackAdapter) doRequest(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("paystack: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("paystack: failed to read response: %w", err)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("paystack: unexpected response (status %d)", resp.StatusCode)
	}
	if resp.StatusCode >= 400 || !envelope.Status {
		return nil, fmt.Errorf("paystack: API error (status %d): %s", resp.StatusCode, envelope.Message)
	}
	return envelope.Data, nil
}
