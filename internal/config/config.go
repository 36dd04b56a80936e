package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flexprice/cryptapi/internal/types"
	"github.com/flexprice/cryptapi/internal/validator"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL        = "https://api.cryptapi.io/"
	DefaultHost           = "api.cryptapi.io"
	DefaultMaxConnections = 32
	DefaultTimeout        = 180 * time.Second
)

type Configuration struct {
	CryptAPI CryptAPIConfig `mapstructure:"cryptapi" validate:"required"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Logging  LoggingConfig  `mapstructure:"logging" validate:"required"`
}

// CryptAPIConfig controls where requests go and how the pooled transport behaves
type CryptAPIConfig struct {
	BaseURL        string        `mapstructure:"base_url" validate:"required,url"`
	Host           string        `mapstructure:"host" validate:"required,hostname"`
	MaxConnections int           `mapstructure:"max_connections" validate:"min=1"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"min=1s"`
}

// PaymentConfig describes the payment context used by the smoke-test CLI
type PaymentConfig struct {
	Coin          string `mapstructure:"coin"`
	OwnerAddress  string `mapstructure:"owner_address"`
	CallbackURL   string `mapstructure:"callback_url"`
	Email         string `mapstructure:"email"`
	Priority      string `mapstructure:"priority"`
	NotifyPending bool   `mapstructure:"notify_pending"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cryptapi")

	v.SetEnvPrefix("CRYPTAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it without a config file
func setDefaults(v *viper.Viper) {
	v.SetDefault("cryptapi.base_url", DefaultBaseURL)
	v.SetDefault("cryptapi.host", DefaultHost)
	v.SetDefault("cryptapi.max_connections", DefaultMaxConnections)
	v.SetDefault("cryptapi.timeout", DefaultTimeout)
	v.SetDefault("payment.coin", "")
	v.SetDefault("payment.owner_address", "")
	v.SetDefault("payment.callback_url", "")
	v.SetDefault("payment.email", "")
	v.SetDefault("payment.priority", string(types.PriorityDefault))
	v.SetDefault("payment.notify_pending", false)
	v.SetDefault("logging.level", string(types.LogLevelInfo))
}

func (c Configuration) Validate() error {
	return validator.ValidateStruct(c, "Invalid configuration, check config.yaml and CRYPTAPI_* variables")
}

// GetDefaultConfig returns the configuration used when nothing is provided,
// pointing at the public CryptAPI endpoint
func GetDefaultConfig() *Configuration {
	return &Configuration{
		CryptAPI: CryptAPIConfig{
			BaseURL:        DefaultBaseURL,
			Host:           DefaultHost,
			MaxConnections: DefaultMaxConnections,
			Timeout:        DefaultTimeout,
		},
		Payment: PaymentConfig{
			Priority: string(types.PriorityDefault),
		},
		Logging: LoggingConfig{Level: types.LogLevelInfo},
	}
}
