package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"brickvest.backend/internal/config"
	domainerrors "brickvest.backend/internal/domain/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newGatewayServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(config.PaymentConfig{BaseURL: srv.URL, APIKey: "sk_test"})
	return client, srv
}

func TestClient_Charge_Settled(t *testing.T) {
	client, _ := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/charges", r.URL.Path)
		require.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "5000.00", req["amount"])
		require.Equal(t, "card", req["paymentMethod"])

		json.NewEncoder(w).Encode(map[string]string{"id": "ch_123", "status": "succeeded"})
	})

	res, err := client.Charge(context.Background(), ChargeInput{
		Amount:        decimal.NewFromInt(5000),
		Currency:      "USD",
		PaymentMethod: "card",
		Reference:     "inv-1",
	})
	require.NoError(t, err)
	require.Equal(t, "ch_123", res.ProviderRef)
	require.True(t, res.Settled)
}

func TestClient_Charge_PendingAndDeclined(t *testing.T) {
	status := "pending"
	client, _ := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "ch_456", "status": status})
	})

	res, err := client.Charge(context.Background(), ChargeInput{
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "bank_transfer",
	})
	require.NoError(t, err)
	require.False(t, res.Settled)

	status = "declined"
	_, err = client.Charge(context.Background(), ChargeInput{
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "card",
	})
	require.ErrorIs(t, err, domainerrors.ErrPaymentFailed)
}

func TestClient_Refund(t *testing.T) {
	client, _ := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/refunds", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "ch_123", req["chargeId"])

		json.NewEncoder(w).Encode(map[string]string{"id": "rf_1", "status": "succeeded"})
	})

	ref, err := client.Refund(context.Background(), "ch_123", decimal.NewFromInt(5000))
	require.NoError(t, err)
	require.Equal(t, "rf_1", ref)
}

func TestClient_Refund_Declined(t *testing.T) {
	client, _ := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "failed", "error": "charge already refunded"})
	})

	_, err := client.Refund(context.Background(), "ch_123", decimal.NewFromInt(5000))
	require.ErrorIs(t, err, domainerrors.ErrRefundFailed)
}

func TestClient_ServerErrors(t *testing.T) {
	client, _ := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Charge(context.Background(), ChargeInput{Amount: decimal.NewFromInt(1), PaymentMethod: "card"})
	require.Error(t, err)

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "EXTERNAL_SERVICE", appErr.Code)
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient(config.PaymentConfig{BaseURL: "http://127.0.0.1:1", APIKey: "sk"})
	_, err := client.Charge(context.Background(), ChargeInput{Amount: decimal.NewFromInt(1), PaymentMethod: "card"})
	require.Error(t, err)
}
