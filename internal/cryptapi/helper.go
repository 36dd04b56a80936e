package cryptapi

import (
	"context"
	"sync"

	"github.com/flexprice/cryptapi/internal/config"
	"github.com/flexprice/cryptapi/internal/httpclient"
	"github.com/flexprice/cryptapi/internal/logger"
	"github.com/flexprice/cryptapi/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	DefaultQRCodeSize = 512
)

// DefaultConversionValue is the amount converted when none is given
var DefaultConversionValue = decimal.NewFromInt(10)

// HelperParams identifies one payment flow
type HelperParams struct {
	Coin         types.Coin
	OwnerAddress string
	CallbackURL  string
}

// Validate checks coin, owner address and callback URL, in that order
func (p HelperParams) Validate() error {
	const op = "cryptapi.NewHelper"
	if p.Coin.IsEmpty() {
		return newMissingArgumentError(op, "Coin is Missing")
	}
	if p.OwnerAddress == "" {
		return newMissingArgumentError(op, "Owner Address is Missing")
	}
	if p.CallbackURL == "" {
		return newMissingArgumentError(op, "Callback URL is Missing")
	}
	return nil
}

// AddressOptions tunes GeneratePaymentAddress
type AddressOptions struct {
	// NotifyPending asks the gateway to call back for unconfirmed transactions too
	NotifyPending bool
	// Email receives payment notifications, it must be confirmed with CryptAPI first
	Email string
	// Priority for forwarding funds, defaults to types.PriorityDefault
	Priority types.Priority
}

// Helper is the payment context of one merchant payment flow. It owns a pooled
// HTTP client which Close releases; callers should defer Close right after
// construction. A Helper must not be used after Close.
type Helper struct {
	coin         types.Coin
	ownerAddress string
	callbackURL  string

	mu             sync.RWMutex
	paymentAddress string

	client     httpclient.Client
	dispatcher *dispatcher
	logger     *logger.Logger

	closeOnce sync.Once
	closeErr  error
}

// NewHelper creates a payment context with its own connection pool. A nil log
// falls back to the global logger.
func NewHelper(params HelperParams, cfg config.CryptAPIConfig, log *logger.Logger) (*Helper, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.L
	}
	client := httpclient.NewDefaultClient(httpclient.NewClientConfig(cfg), log)
	return newHelper(params, client, newDispatcher(cfg, log), log), nil
}

func newHelper(params HelperParams, client httpclient.Client, d *dispatcher, log *logger.Logger) *Helper {
	return &Helper{
		coin:         params.Coin,
		ownerAddress: params.OwnerAddress,
		callbackURL:  params.CallbackURL,
		client:       client,
		dispatcher:   d,
		logger:       log,
	}
}

func (h *Helper) Coin() types.Coin {
	return h.coin
}

func (h *Helper) OwnerAddress() string {
	return h.ownerAddress
}

func (h *Helper) CallbackURL() string {
	return h.callbackURL
}

// PaymentAddress returns the address generated by GeneratePaymentAddress, empty before that
func (h *Helper) PaymentAddress() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.paymentAddress
}

// Close releases the pooled HTTP client
func (h *Helper) Close() error {
	h.closeOnce.Do(func() {
		h.closeErr = h.client.Close()
	})
	return h.closeErr
}

// GeneratePaymentAddress asks the gateway for a deposit address forwarding to the
// owner address and remembers it as the payment address.
func (h *Helper) GeneratePaymentAddress(ctx context.Context, opts AddressOptions) (Response, error) {
	// post=0 keeps callbacks as GET, json=1 asks for a JSON callback payload
	params := Params{
		"callback": h.callbackURL,
		"address":  h.ownerAddress,
		"pending":  lo.Ternary(opts.NotifyPending, 1, 0),
		"post":     0,
		"json":     1,
		"priority": opts.Priority.OrDefault().String(),
		"convert":  0,
	}
	if opts.Email != "" {
		params["email"] = opts.Email
	}

	resp, err := h.dispatcher.do(ctx, h.client, h.coin, endpointCreate, params)
	if err != nil {
		h.logger.Errorw("failed payment address generation",
			"coin", h.coin,
			"error", err)
		return nil, err
	}

	addressIn := resp.String("address_in")
	if addressIn == "" {
		h.logger.Errorw("failed payment address generation",
			"coin", h.coin,
			"reason", "address_in missing from response")
		return resp, nil
	}

	h.mu.Lock()
	h.paymentAddress = addressIn
	h.mu.Unlock()

	h.logger.Debugw("payment address generated",
		"coin", h.coin,
		"payment_address", addressIn)
	return resp, nil
}

// GetPaymentLogs returns the callbacks the gateway sent to the callback URL
func (h *Helper) GetPaymentLogs(ctx context.Context) (Response, error) {
	params := Params{
		"callback": h.callbackURL,
	}
	return h.dispatcher.do(ctx, h.client, h.coin, endpointLogs, params)
}

// GetQRCode returns a base64 QR code for the payment address. size is forwarded
// as-is (the gateway accepts 64 to 1024); a non-positive size selects 512. The
// payment address is not checked, before GeneratePaymentAddress it is sent empty.
func (h *Helper) GetQRCode(ctx context.Context, size int) (Response, error) {
	if size <= 0 {
		size = DefaultQRCodeSize
	}
	params := Params{
		"address": h.PaymentAddress(),
		"value":   "",
		"size":    size,
	}
	return h.dispatcher.do(ctx, h.client, h.coin, endpointQRCode, params)
}

// GetConversion converts value from fromCoin (a coin, token or fiat ticker) into the
// helper coin. A zero value converts DefaultConversionValue.
func (h *Helper) GetConversion(ctx context.Context, fromCoin string, value decimal.Decimal) (Response, error) {
	if fromCoin == "" {
		return nil, newMissingArgumentError("cryptapi.Helper.GetConversion", "From Coin is Missing")
	}
	if value.IsZero() {
		value = DefaultConversionValue
	}
	params := Params{
		"from":  fromCoin,
		"value": value,
	}
	return h.dispatcher.do(ctx, h.client, h.coin, endpointConvert, params)
}
