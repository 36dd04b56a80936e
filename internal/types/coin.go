package types

import (
	"strings"

	ierr "github.com/flexprice/cryptapi/internal/errors"
)

// Coin is a CryptAPI ticker such as "btc" or "polygon_usdt". Multi-token
// chains join the chain and the token with an underscore.
type Coin string

// String returns the string representation of the coin
func (c Coin) String() string {
	return string(c)
}

// IsEmpty reports whether no ticker was provided
func (c Coin) IsEmpty() bool {
	return c == ""
}

// PathSegment maps the ticker to its URL segment, "polygon_usdt" -> "polygon/usdt/".
// An empty coin yields an empty segment.
func (c Coin) PathSegment() string {
	if c.IsEmpty() {
		return ""
	}
	return strings.ReplaceAll(string(c), "_", "/") + "/"
}

// Chain returns the chain part of a multi-token ticker, or the ticker itself
func (c Coin) Chain() string {
	chain, _, _ := strings.Cut(string(c), "_")
	return chain
}

// Token returns the token part of a multi-token ticker, empty for native coins
func (c Coin) Token() string {
	_, token, _ := strings.Cut(string(c), "_")
	return token
}

// NewTokenCoin builds the ticker for a token living on a multi-token chain
func NewTokenCoin(chain, token string) Coin {
	return Coin(chain + "_" + token)
}

// Priority is the gateway fee-speed tier used when forwarding funds. The set of
// accepted values differs per chain and is enforced by the gateway.
type Priority string

const (
	PriorityDefault  Priority = "default"
	PriorityFast     Priority = "fast"
	PriorityEconomic Priority = "economic"
)

// String returns the string representation of the priority
func (p Priority) String() string {
	return string(p)
}

// OrDefault returns PriorityDefault when no priority was chosen
func (p Priority) OrDefault() Priority {
	if p == "" {
		return PriorityDefault
	}
	return p
}

// Validate checks the priority against the tiers shared by every chain
func (p Priority) Validate() error {
	switch p {
	case PriorityDefault, PriorityFast, PriorityEconomic:
		return nil
	default:
		return ierr.NewError("invalid priority").
			WithHint("Please provide a valid priority").
			WithReportableDetails(map[string]any{
				"allowed": []Priority{
					PriorityDefault,
					PriorityFast,
					PriorityEconomic,
				},
			}).
			Mark(ierr.ErrValidation)
	}
}
