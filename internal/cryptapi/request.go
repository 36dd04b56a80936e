package cryptapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/flexprice/cryptapi/internal/config"
	"github.com/flexprice/cryptapi/internal/httpclient"
	"github.com/flexprice/cryptapi/internal/logger"
	"github.com/flexprice/cryptapi/internal/types"
)

const (
	// BaseURL is the public CryptAPI endpoint
	BaseURL = config.DefaultBaseURL
	// Host is sent as the Host header on every request
	Host = config.DefaultHost
	// SupportedCoinsPage lists the supported coins for humans
	SupportedCoinsPage = "https://cryptapi.io/cryptocurrencies"
)

const (
	endpointCreate   = "create"
	endpointLogs     = "logs"
	endpointQRCode   = "qrcode"
	endpointConvert  = "convert"
	endpointInfo     = "info"
	endpointEstimate = "estimate"
)

// dispatcher turns (coin, endpoint, params) into a GET against the gateway
type dispatcher struct {
	baseURL string
	host    string
	logger  *logger.Logger
}

func newDispatcher(cfg config.CryptAPIConfig, log *logger.Logger) *dispatcher {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURL
	}
	host := cfg.Host
	if host == "" {
		host = Host
	}
	return &dispatcher{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		host:    host,
		logger:  log,
	}
}

// buildURL returns <base><coin path>/<endpoint>/, omitting the coin segment when coin is empty
func (d *dispatcher) buildURL(coin types.Coin, endpoint string) string {
	return d.baseURL + coin.PathSegment() + endpoint + "/"
}

// do sends one request and decodes the reply. Replies with status "error" become a
// GatewayError, including those carried by a non-2xx status.
func (d *dispatcher) do(ctx context.Context, client httpclient.Client, coin types.Coin, endpoint string, params Params) (Response, error) {
	query, err := params.toQuery()
	if err != nil {
		return nil, err
	}

	requestID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST)
	url := d.buildURL(coin, endpoint)

	d.logger.Debugw("sending cryptapi request",
		"request_id", requestID,
		"coin", coin,
		"endpoint", endpoint,
		"url", url)

	resp, err := client.Send(ctx, &httpclient.Request{
		Method: http.MethodGet,
		URL:    url,
		Headers: map[string]string{
			"Host": d.host,
		},
		Query: query,
	})
	if err != nil {
		if httpErr, ok := httpclient.IsHTTPError(err); ok {
			if data, decodeErr := decodeResponse(httpErr.Response); decodeErr == nil && data.IsError() {
				return nil, d.remoteError(requestID, endpoint, data)
			}
		}
		d.logger.Errorw("cryptapi request failed",
			"request_id", requestID,
			"coin", coin,
			"endpoint", endpoint,
			"error", err)
		return nil, err
	}

	data, err := decodeResponse(resp.Body)
	if err != nil {
		d.logger.Errorw("failed to decode cryptapi response",
			"request_id", requestID,
			"endpoint", endpoint,
			"error", err)
		return nil, err
	}

	if data.IsError() {
		return nil, d.remoteError(requestID, endpoint, data)
	}

	d.logger.Debugw("cryptapi request succeeded",
		"request_id", requestID,
		"endpoint", endpoint,
		"status_code", resp.StatusCode)
	return data, nil
}

func (d *dispatcher) remoteError(requestID, endpoint string, data Response) error {
	d.logger.Warnw("cryptapi reported an error",
		"request_id", requestID,
		"endpoint", endpoint,
		"message", data.ErrorMessage())
	return newRemoteError(endpoint, data)
}
