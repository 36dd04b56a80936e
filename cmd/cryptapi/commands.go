package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"syscall"

	"github.com/flexprice/cryptapi/internal/config"
	"github.com/flexprice/cryptapi/internal/cryptapi"
	ierr "github.com/flexprice/cryptapi/internal/errors"
	"github.com/flexprice/cryptapi/internal/logger"
	"github.com/flexprice/cryptapi/internal/types"
	"github.com/k0kubun/pp"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

// maxConcurrentLookups bounds the coin-info fan-out
const maxConcurrentLookups = 4

type command struct {
	name string
	args []string
}

type commandFunc func(ctx context.Context, env *environment, args []string) error

type environment struct {
	cfg     *config.Configuration
	gateway *cryptapi.Gateway
	logger  *logger.Logger
}

var commands = map[string]commandFunc{
	"info":      runInfo,
	"coins":     runCoins,
	"coin-info": runCoinInfo,
	"estimate":  runEstimate,
	"convert":   runConvert,
	"create":    runCreate,
}

func run(cmd command, cfg *config.Configuration, gateway *cryptapi.Gateway, log *logger.Logger) error {
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &environment{cfg: cfg, gateway: gateway, logger: log}
	if err := commands[cmd.name](ctx, env, cmd.args); err != nil {
		if gwErr, ok := cryptapi.IsGatewayError(err); ok {
			return fmt.Errorf("%s: %s", cmd.name, gwErr.Message)
		}
		if hint := ierr.GetHint(err); hint != "" {
			return fmt.Errorf("%s: %s (%w)", cmd.name, hint, err)
		}
		return fmt.Errorf("%s: %w", cmd.name, err)
	}
	return nil
}

func runInfo(ctx context.Context, env *environment, _ []string) error {
	info, err := env.gateway.GetInfo(ctx)
	if err != nil {
		return err
	}
	_, err = pp.Println(info)
	return err
}

func runCoins(ctx context.Context, env *environment, _ []string) error {
	coins, err := env.gateway.GetSupportedCoins(ctx)
	if err != nil {
		return err
	}

	tickers := lo.Keys(coins)
	slices.Sort(tickers)
	for _, ticker := range tickers {
		fmt.Printf("%-20s %s\n", ticker, coins[ticker])
	}
	return nil
}

type coinInfoResult struct {
	coin types.Coin
	info cryptapi.Response
}

// runCoinInfo looks coins up concurrently, each lookup on its own transport
func runCoinInfo(ctx context.Context, env *environment, args []string) error {
	if len(args) == 0 {
		return ierr.NewError("no coin given").
			WithHint("Usage: coin-info <coin>...").
			Mark(ierr.ErrValidation)
	}

	p := pool.NewWithResults[coinInfoResult]().
		WithContext(ctx).
		WithMaxGoroutines(maxConcurrentLookups)
	for _, arg := range lo.Uniq(args) {
		coin := types.Coin(arg)
		p.Go(func(ctx context.Context) (coinInfoResult, error) {
			info, err := env.gateway.GetCoinInfo(ctx, coin)
			if err != nil {
				return coinInfoResult{}, fmt.Errorf("%s: %w", coin, err)
			}
			return coinInfoResult{coin: coin, info: info}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return err
	}

	slices.SortFunc(results, func(a, b coinInfoResult) int {
		return compareCoins(a.coin, b.coin)
	})
	for _, r := range results {
		fmt.Printf("== %s\n", r.coin)
		if _, err := pp.Println(r.info); err != nil {
			return err
		}
	}
	return nil
}

func compareCoins(a, b types.Coin) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func runEstimate(ctx context.Context, env *environment, args []string) error {
	if len(args) == 0 {
		return ierr.NewError("no coin given").
			WithHint("Usage: estimate <coin> [addresses] [priority]").
			Mark(ierr.ErrValidation)
	}

	addresses := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return ierr.WithError(err).
				WithHint("Addresses must be a whole number").
				Mark(ierr.ErrValidation)
		}
		addresses = n
	}

	priority := types.PriorityDefault
	if len(args) > 2 {
		priority = parsePriority(env.logger, args[2])
	}

	estimate, err := env.gateway.GetEstimateFees(ctx, types.Coin(args[0]), addresses, priority)
	if err != nil {
		return err
	}
	_, err = pp.Println(estimate)
	return err
}

func runConvert(ctx context.Context, env *environment, args []string) error {
	if len(args) == 0 {
		return ierr.NewError("no source currency given").
			WithHint("Usage: convert <from> [value]").
			Mark(ierr.ErrValidation)
	}

	value := decimal.Zero
	if len(args) > 1 {
		v, err := decimal.NewFromString(args[1])
		if err != nil {
			return ierr.WithError(err).
				WithHint("Value must be a decimal number").
				Mark(ierr.ErrValidation)
		}
		value = v
	}

	helper, err := newPaymentHelper(env)
	if err != nil {
		return err
	}
	defer helper.Close()

	conversion, err := helper.GetConversion(ctx, args[0], value)
	if err != nil {
		return err
	}
	_, err = pp.Println(conversion)
	return err
}

// runCreate walks the payment flow of the configured context end to end
func runCreate(ctx context.Context, env *environment, _ []string) error {
	helper, err := newPaymentHelper(env)
	if err != nil {
		return err
	}
	defer helper.Close()

	payment := env.cfg.Payment
	address, err := helper.GeneratePaymentAddress(ctx, cryptapi.AddressOptions{
		NotifyPending: payment.NotifyPending,
		Email:         payment.Email,
		Priority:      parsePriority(env.logger, payment.Priority),
	})
	if err != nil {
		return err
	}
	fmt.Println("== payment address")
	if _, err := pp.Println(address); err != nil {
		return err
	}

	logs, err := helper.GetPaymentLogs(ctx)
	if err != nil {
		return err
	}
	fmt.Println("== payment logs")
	if _, err := pp.Println(logs); err != nil {
		return err
	}

	qrcode, err := helper.GetQRCode(ctx, cryptapi.DefaultQRCodeSize)
	if err != nil {
		return err
	}
	qr, err := cryptapi.Decode[cryptapi.QRCodeResponse](qrcode)
	if err != nil {
		return err
	}
	fmt.Println("== qr code")
	fmt.Printf("payment uri: %s\nimage bytes (base64): %d\n", qr.PaymentURI, len(qr.QRCode))
	return nil
}

func newPaymentHelper(env *environment) (*cryptapi.Helper, error) {
	payment := env.cfg.Payment
	return env.gateway.NewHelper(cryptapi.HelperParams{
		Coin:         types.Coin(payment.Coin),
		OwnerAddress: payment.OwnerAddress,
		CallbackURL:  payment.CallbackURL,
	})
}

// parsePriority keeps chain specific tiers but warns about them
func parsePriority(log *logger.Logger, raw string) types.Priority {
	priority := types.Priority(raw).OrDefault()
	if err := priority.Validate(); err != nil {
		log.Warnw("non-standard priority, the gateway may reject it",
			"priority", priority)
	}
	return priority
}
