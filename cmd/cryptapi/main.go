package main

import (
	"fmt"
	"os"

	"github.com/flexprice/cryptapi/internal/config"
	"github.com/flexprice/cryptapi/internal/cryptapi"
	"github.com/flexprice/cryptapi/internal/logger"
	"go.uber.org/fx"
)

const usage = `usage: cryptapi <command> [args]

commands:
  info                                 service-wide catalog
  coins                                supported coins and tokens
  coin-info <coin>...                  information for one or more coins
  estimate <coin> [addresses] [priority]
                                       blockchain fee estimate
  convert <from> [value]               convert into the configured payment coin
  create                               generate a payment address, then fetch its logs and QR code

The payment context is read from config.yaml or CRYPTAPI_PAYMENT_* variables.
Supported coins are listed at ` + cryptapi.SupportedCoinsPage

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cmd := command{name: os.Args[1], args: os.Args[2:]}
	if _, ok := commands[cmd.name]; !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", cmd.name, usage)
		os.Exit(2)
	}

	app := fx.New(
		fx.NopLogger,
		fx.Supply(cmd),
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Gateway
			cryptapi.NewGateway,
		),
		fx.Invoke(run),
	)

	if err := app.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
