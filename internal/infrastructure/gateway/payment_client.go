package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"brickvest.backend/internal/config"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ChargeInput describes a charge request against the payment gateway.
type ChargeInput struct {
	Amount         decimal.Decimal
	Currency       string
	CustomerID     string
	PaymentMethod  string
	PaymentDetails string
	Reference      string
}

// ChargeResult is the gateway's answer to a charge request. Settled reports
// whether the funds cleared synchronously; bank-style methods come back
// unsettled and complete out of band.
type ChargeResult struct {
	ProviderRef string
	Settled     bool
}

// Client talks to the external payment gateway over its JSON API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a payment gateway client from config
func NewClient(cfg config.PaymentConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chargeRequest struct {
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	CustomerID     string `json:"customerId,omitempty"`
	PaymentMethod  string `json:"paymentMethod"`
	PaymentDetails string `json:"paymentDetails,omitempty"`
	Reference      string `json:"reference"`
}

type chargeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type refundRequest struct {
	ChargeID string `json:"chargeId"`
	Amount   string `json:"amount"`
	Reason   string `json:"reason,omitempty"`
}

type refundResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Charge submits a charge and returns the gateway reference
func (c *Client) Charge(ctx context.Context, input ChargeInput) (*ChargeResult, error) {
	body := chargeRequest{
		Amount:         input.Amount.StringFixed(2),
		Currency:       input.Currency,
		CustomerID:     input.CustomerID,
		PaymentMethod:  input.PaymentMethod,
		PaymentDetails: input.PaymentDetails,
		Reference:      input.Reference,
	}

	var resp chargeResponse
	if err := c.post(ctx, "/v1/charges", body, &resp); err != nil {
		return nil, err
	}

	switch resp.Status {
	case "succeeded":
		return &ChargeResult{ProviderRef: resp.ID, Settled: true}, nil
	case "pending":
		return &ChargeResult{ProviderRef: resp.ID, Settled: false}, nil
	default:
		logger.Error(ctx, "gateway declined charge",
			zap.String("reference", input.Reference),
			zap.String("status", resp.Status),
			zap.String("error", resp.Error))
		return nil, domainerrors.ErrPaymentFailed
	}
}

// Refund reverses a previous charge and returns the refund reference
func (c *Client) Refund(ctx context.Context, chargeRef string, amount decimal.Decimal) (string, error) {
	body := refundRequest{
		ChargeID: chargeRef,
		Amount:   amount.StringFixed(2),
	}

	var resp refundResponse
	if err := c.post(ctx, "/v1/refunds", body, &resp); err != nil {
		return "", err
	}

	if resp.Status != "succeeded" && resp.Status != "pending" {
		logger.Error(ctx, "gateway declined refund",
			zap.String("charge_ref", chargeRef),
			zap.String("status", resp.Status),
			zap.String("error", resp.Error))
		return "", domainerrors.ErrRefundFailed
	}
	return resp.ID, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domainerrors.ExternalService("payment gateway unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domainerrors.ExternalService("failed to read gateway response", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return domainerrors.ExternalService(fmt.Sprintf("gateway returned %d", resp.StatusCode), nil)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return domainerrors.ExternalService("failed to decode gateway response", err)
	}
	return nil
}
