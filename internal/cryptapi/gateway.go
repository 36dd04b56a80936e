package cryptapi

import (
	"context"
	"strings"

	"github.com/flexprice/cryptapi/internal/config"
	"github.com/flexprice/cryptapi/internal/httpclient"
	"github.com/flexprice/cryptapi/internal/logger"
	"github.com/flexprice/cryptapi/internal/types"
	"github.com/spf13/cast"
)

// feeTiersKey is returned by the info endpoint next to the tickers
const feeTiersKey = "fee_tiers"

// Gateway serves the operations that need no payment context and builds Helpers.
// It holds configuration only: every call opens and closes its own transport.
type Gateway struct {
	cfg        config.CryptAPIConfig
	dispatcher *dispatcher
	logger     *logger.Logger
	newClient  func() httpclient.Client
}

// NewGateway creates a Gateway from the loaded configuration
func NewGateway(cfg *config.Configuration, log *logger.Logger) *Gateway {
	gwCfg := cfg.CryptAPI
	return &Gateway{
		cfg:        gwCfg,
		dispatcher: newDispatcher(gwCfg, log),
		logger:     log,
		newClient: func() httpclient.Client {
			return httpclient.NewDefaultClient(httpclient.NewClientConfig(gwCfg), log)
		},
	}
}

// NewHelper creates a payment context sharing the gateway configuration
func (g *Gateway) NewHelper(params HelperParams) (*Helper, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return newHelper(params, g.newClient(), g.dispatcher, g.logger), nil
}

// send runs one request on a transport scoped to the call
func (g *Gateway) send(ctx context.Context, coin types.Coin, endpoint string, params Params) (Response, error) {
	client := g.newClient()
	defer client.Close()

	return g.dispatcher.do(ctx, client, coin, endpoint, params)
}

// GetInfo returns the service-wide catalog of supported chains and tokens
func (g *Gateway) GetInfo(ctx context.Context) (Response, error) {
	return g.send(ctx, "", endpointInfo, Params{"prices": "0"})
}

// GetSupportedCoins flattens the info catalog into ticker -> display name.
// Tokens on multi-token chains are keyed "<chain>_<token>" and displayed as
// "<token name> (<CHAIN>)".
func (g *Gateway) GetSupportedCoins(ctx context.Context) (map[string]string, error) {
	info, err := g.GetInfo(ctx)
	if err != nil {
		return nil, err
	}
	return flattenSupportedCoins(info), nil
}

func flattenSupportedCoins(info Response) map[string]string {
	coins := make(map[string]string)
	for ticker, raw := range info {
		if ticker == feeTiersKey {
			continue
		}
		coinInfo, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		if name, ok := coinInfo["coin"]; ok {
			coins[ticker] = cast.ToString(name)
			continue
		}

		for token, rawToken := range coinInfo {
			tokenInfo, ok := rawToken.(map[string]any)
			if !ok {
				continue
			}
			key := types.NewTokenCoin(ticker, token).String()
			coins[key] = cast.ToString(tokenInfo["coin"]) + " (" + strings.ToUpper(ticker) + ")"
		}
	}
	return coins
}

// GetCoinInfo returns the gateway information for a single coin or token
func (g *Gateway) GetCoinInfo(ctx context.Context, coin types.Coin) (Response, error) {
	if coin.IsEmpty() {
		return nil, newMissingArgumentError("cryptapi.Gateway.GetCoinInfo", "Coin is Missing")
	}
	return g.send(ctx, coin, endpointInfo, Params{"prices": "0"})
}

// GetEstimateFees estimates the blockchain fee of forwarding to the given number of
// addresses. Non-positive addresses means 1; an empty priority means default.
func (g *Gateway) GetEstimateFees(ctx context.Context, coin types.Coin, addresses int, priority types.Priority) (Response, error) {
	if coin.IsEmpty() {
		return nil, newMissingArgumentError("cryptapi.Gateway.GetEstimateFees", "Coin is Missing")
	}
	if addresses <= 0 {
		addresses = 1
	}
	params := Params{
		"addresses": addresses,
		"priority":  priority.OrDefault().String(),
	}
	return g.send(ctx, coin, endpointEstimate, params)
}
