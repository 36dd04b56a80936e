package cryptapi

import "github.com/shopspring/decimal"

// AddressResponse is the typed view of a create reply
type AddressResponse struct {
	AddressIn   string `json:"address_in"`
	AddressOut  string `json:"address_out"`
	CallbackURL string `json:"callback_url"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// LogsResponse is the typed view of a logs reply
type LogsResponse struct {
	AddressIn           string        `json:"address_in"`
	AddressOut          string        `json:"address_out"`
	CallbackURL         string        `json:"callback_url"`
	Status              string        `json:"status"`
	NotifyPending       bool          `json:"notify_pending"`
	NotifyConfirmations int           `json:"notify_confirmations"`
	Priority            string        `json:"priority"`
	Callbacks           []CallbackLog `json:"callbacks"`
}

// CallbackLog is one transaction the gateway notified the callback URL about
type CallbackLog struct {
	TxIDIn             string           `json:"txid_in"`
	TxIDOut            string           `json:"txid_out"`
	Value              decimal.Decimal  `json:"value"`
	ValueCoin          decimal.Decimal  `json:"value_coin"`
	ValueForwarded     decimal.Decimal  `json:"value_forwarded"`
	ValueForwardedCoin decimal.Decimal  `json:"value_forwarded_coin"`
	Confirmations      int              `json:"confirmations"`
	LastUpdate         string           `json:"last_update"`
	Result             string           `json:"result"`
	FeePercent         decimal.Decimal  `json:"fee_percent"`
	Fee                decimal.Decimal  `json:"fee"`
	FeeCoin            decimal.Decimal  `json:"fee_coin"`
	Prices             decimal.Decimal  `json:"prices"`
	Logs               []map[string]any `json:"logs"`
}

// IsDone reports whether the gateway finished forwarding the transaction
func (c CallbackLog) IsDone() bool {
	return c.Result == "done"
}

// QRCodeResponse is the typed view of a qrcode reply
type QRCodeResponse struct {
	Status     string `json:"status"`
	QRCode     string `json:"qrcode"`
	PaymentURI string `json:"payment_uri"`
}

// ConversionResponse is the typed view of a convert reply
type ConversionResponse struct {
	Status       string          `json:"status"`
	ValueCoin    decimal.Decimal `json:"value_coin"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

// EstimateResponse is the typed view of an estimate reply
type EstimateResponse struct {
	Status                string                     `json:"status"`
	EstimatedCost         decimal.Decimal            `json:"estimated_cost"`
	EstimatedCostCurrency map[string]decimal.Decimal `json:"estimated_cost_currency"`
}

// CoinInfo is the typed view of a single-coin info reply
type CoinInfo struct {
	Status             string                     `json:"status"`
	Coin               string                     `json:"coin"`
	Ticker             string                     `json:"ticker"`
	Logo               string                     `json:"logo"`
	MinimumTransaction decimal.Decimal            `json:"minimum_transaction_coin"`
	FeePercent         decimal.Decimal            `json:"fee_percent"`
	Prices             map[string]decimal.Decimal `json:"prices"`
	PricesUpdated      string                     `json:"prices_updated"`
}
