package cryptapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/flexprice/cryptapi/internal/config"
	ierr "github.com/flexprice/cryptapi/internal/errors"
	"github.com/flexprice/cryptapi/internal/httpclient"
	"github.com/flexprice/cryptapi/internal/logger"
	"github.com/flexprice/cryptapi/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_BuildURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		coin     types.Coin
		endpoint string
		want     string
	}{
		{name: "service wide", baseURL: BaseURL, coin: "", endpoint: "info", want: "https://api.cryptapi.io/info/"},
		{name: "native coin", baseURL: BaseURL, coin: "btc", endpoint: "create", want: "https://api.cryptapi.io/btc/create/"},
		{name: "underscore becomes slash", baseURL: BaseURL, coin: "polygon_usdt", endpoint: "create", want: "https://api.cryptapi.io/polygon/usdt/create/"},
		{name: "base without trailing slash", baseURL: "http://localhost:8080", coin: "ltc", endpoint: "logs", want: "http://localhost:8080/ltc/logs/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDispatcher(config.CryptAPIConfig{BaseURL: tt.baseURL}, logger.NewNopLogger())
			assert.Equal(t, tt.want, d.buildURL(tt.coin, tt.endpoint))
		})
	}
}

func TestDispatcher_DefaultsHost(t *testing.T) {
	d := newDispatcher(config.CryptAPIConfig{}, logger.NewNopLogger())
	assert.Equal(t, Host, d.host)
	assert.Equal(t, BaseURL, d.baseURL)
}

func TestDispatcher_Do(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantGateway string
		wantHTTP    bool
	}{
		{
			name:   "success is returned unchanged",
			status: http.StatusOK,
			body:   `{"status":"success","value":1}`,
		},
		{
			name:   "missing status is not an error",
			status: http.StatusOK,
			body:   `{"btc":{"coin":"Bitcoin"}}`,
		},
		{
			name:        "error status",
			status:      http.StatusOK,
			body:        `{"status":"error","error":"bad address"}`,
			wantGateway: "bad address",
		},
		{
			name:        "error status on a 4xx reply",
			status:      http.StatusBadRequest,
			body:        `{"status":"error","error":"Invalid callback"}`,
			wantGateway: "Invalid callback",
		},
		{
			name:     "4xx reply without a gateway error body",
			status:   http.StatusBadGateway,
			body:     `<html>bad gateway</html>`,
			wantHTTP: true,
		},
		{
			name:     "malformed body",
			status:   http.StatusOK,
			body:     `not json`,
			wantHTTP: true,
		},
		{
			name:     "json null body",
			status:   http.StatusOK,
			body:     `null`,
			wantHTTP: true,
		},
	}

	d := newDispatcher(config.GetDefaultConfig().CryptAPI, logger.NewNopLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newRecordingClient(tt.body)
			client.status = tt.status

			resp, err := d.do(context.Background(), client, "btc", endpointInfo, Params{"prices": "0"})

			switch {
			case tt.wantGateway != "":
				assert.Nil(t, resp)
				gwErr, ok := IsGatewayError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantGateway, gwErr.Message)
				assert.False(t, ierr.IsHTTPClient(err))
			case tt.wantHTTP:
				assert.Nil(t, resp)
				assert.True(t, ierr.IsHTTPClient(err))
				_, isGateway := IsGatewayError(err)
				assert.False(t, isGateway)
			default:
				require.NoError(t, err)
				assert.NotNil(t, resp)
			}
		})
	}
}

func TestDispatcher_RejectsNonScalarParams(t *testing.T) {
	d := newDispatcher(config.GetDefaultConfig().CryptAPI, logger.NewNopLogger())
	client := newRecordingClient(`{}`)

	_, err := d.do(context.Background(), client, "btc", endpointLogs, Params{"callback": []string{"a", "b"}})
	assert.True(t, ierr.IsValidation(err))
	assert.Zero(t, client.requestCount())
}

func TestDispatcher_HTTPErrorIsPreserved(t *testing.T) {
	d := newDispatcher(config.GetDefaultConfig().CryptAPI, logger.NewNopLogger())
	client := newRecordingClient(`upstream timeout`)
	client.status = http.StatusGatewayTimeout

	_, err := d.do(context.Background(), client, "", endpointInfo, nil)
	httpErr, ok := httpclient.IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusGatewayTimeout, httpErr.StatusCode)
}
