package cryptapi

import (
	"net/http"
	"testing"

	"github.com/flexprice/cryptapi/internal/config"
	ierr "github.com/flexprice/cryptapi/internal/errors"
	"github.com/flexprice/cryptapi/internal/logger"
	"github.com/flexprice/cryptapi/internal/testutil"
	"github.com/flexprice/cryptapi/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlowHelper(t *testing.T, client *testutil.MockHTTPClient, coin types.Coin) *Helper {
	t.Helper()
	cfg := config.GetDefaultConfig().CryptAPI
	log := logger.NewNopLogger()
	h := newHelper(HelperParams{
		Coin:         coin,
		OwnerAddress: "0xowner",
		CallbackURL:  "https://shop.example/cb?order=7",
	}, client, newDispatcher(cfg, log), log)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestPaymentFlow(t *testing.T) {
	ctx := testutil.SetupContext(t)
	client := testutil.NewMockHTTPClient()
	client.RegisterJSONResponse("bep20/usdt/create/", `{"status":"success","address_in":"0xdeposit","address_out":"0xowner","callback_url":"https://shop.example/cb?order=7","priority":"default"}`)
	client.RegisterJSONResponse("bep20/usdt/logs/", `{
		"status": "success",
		"address_in": "0xdeposit",
		"callbacks": [
			{"txid_in": "0xt1", "value_coin": "12.5", "confirmations": 3, "result": "done"},
			{"txid_in": "0xt2", "value_coin": "1", "confirmations": 0, "result": "pending"}
		]
	}`)
	client.RegisterJSONResponse("bep20/usdt/qrcode/", `{"status":"success","qrcode":"iVBORw0KGgo=","payment_uri":"0xdeposit"}`)

	h := newFlowHelper(t, client, types.NewTokenCoin("bep20", "usdt"))

	created, err := h.GeneratePaymentAddress(ctx, AddressOptions{})
	require.NoError(t, err)
	var address AddressResponse
	require.NoError(t, created.As(&address))
	assert.Equal(t, "0xdeposit", address.AddressIn)
	assert.Equal(t, "0xdeposit", h.PaymentAddress())

	logs, err := h.GetPaymentLogs(ctx)
	require.NoError(t, err)
	var typed LogsResponse
	require.NoError(t, logs.As(&typed))
	require.Len(t, typed.Callbacks, 2)
	assert.True(t, typed.Callbacks[0].IsDone())
	assert.True(t, decimal.RequireFromString("12.5").Equal(typed.Callbacks[0].ValueCoin))
	assert.False(t, typed.Callbacks[1].IsDone())

	qr, err := h.GetQRCode(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "0xdeposit", qr.String("payment_uri"))

	requests := client.Requests()
	require.Len(t, requests, 3)
	assert.Equal(t, "0xdeposit", requests[2].Query["address"])
	assert.Equal(t, "512", requests[2].Query["size"])
	for _, req := range requests {
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, Host, req.Headers["Host"])
	}
}

func TestPaymentFlow_UnknownEndpointIsTransportError(t *testing.T) {
	ctx := testutil.SetupContext(t)
	client := testutil.NewMockHTTPClient()
	h := newFlowHelper(t, client, "btc")

	_, err := h.GetPaymentLogs(ctx)
	require.Error(t, err)
	assert.True(t, ierr.IsHTTPClient(err))
	_, isGateway := IsGatewayError(err)
	assert.False(t, isGateway)
}

func TestPaymentFlow_ErrorBodyOnBadRequest(t *testing.T) {
	ctx := testutil.SetupContext(t)
	client := testutil.NewMockHTTPClient()
	client.RegisterResponse("btc/create/", testutil.MockResponse{
		StatusCode: http.StatusBadRequest,
		Body:       []byte(`{"status":"error","error":"Invalid address"}`),
	})
	h := newFlowHelper(t, client, "btc")

	_, err := h.GeneratePaymentAddress(ctx, AddressOptions{Priority: types.PriorityFast})
	gwErr, ok := IsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid address", gwErr.Message)
	assert.Equal(t, endpointCreate, gwErr.Endpoint)
	assert.Empty(t, h.PaymentAddress())
	assert.Equal(t, "fast", client.Requests()[0].Query["priority"])
}

func TestPaymentFlow_CloseReleasesTransportOnce(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	h := newFlowHelper(t, client, "btc")

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
	assert.Equal(t, 1, client.CloseCount())
}
