package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: nothing; the ledger runs in-memory with sane defaults
// - default: every value, so `go run .` works out of the box
// -----------------------------------------------------------------------------

type Config struct {
	Service ServiceConfig
	HTTP    HTTPConfig
	Log     LogConfig
	Market  MarketConfig
	Payment PaymentConfig
	Bus     BusConfig
}

type ServiceConfig struct {
	Name string `envconfig:"SERVICE_NAME" default:"minishop-marketplace"`
	Env  string `envconfig:"ENV" default:"dev"`
}

type HTTPConfig struct {
	Addr            string        `envconfig:"HTTP_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE"`
}

type MarketConfig struct {
	// StrictListing rejects non-positive prices and blank titles at listing time.
	StrictListing bool `envconfig:"STRICT_LISTING" default:"false"`
}

const (
	PaymentModeWallet    = "wallet"
	PaymentModeSimulated = "simulated"
)

type PaymentConfig struct {
	Mode        string  `envconfig:"PAYMENT_MODE" default:"wallet"`
	SuccessRate float64 `envconfig:"PAYMENT_SUCCESS_RATE" default:"0.7"`
}

type BusConfig struct {
	QueueSize      int           `envconfig:"BUS_QUEUE_SIZE" default:"1024"`
	Concurrency    int           `envconfig:"BUS_CONCURRENCY" default:"8"`
	HandlerTimeout time.Duration `envconfig:"BUS_HANDLER_TIMEOUT" default:"30s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Payment.Mode {
	case PaymentModeWallet, PaymentModeSimulated:
	default:
		return fmt.Errorf("config: unknown PAYMENT_MODE %q", c.Payment.Mode)
	}
	if c.Payment.SuccessRate < 0 || c.Payment.SuccessRate > 1 {
		return fmt.Errorf("config: PAYMENT_SUCCESS_RATE must be within [0,1], got %v", c.Payment.SuccessRate)
	}
	if c.Bus.QueueSize <= 0 || c.Bus.Concurrency <= 0 {
		return fmt.Errorf("config: bus queue size and concurrency must be positive")
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Service: ServiceConfig{Name: "minishop-marketplace-test", Env: "test"},
		HTTP:    HTTPConfig{Addr: ":8889", ShutdownTimeout: time.Second},
		Log:     LogConfig{Level: "error"},
		Payment: PaymentConfig{Mode: PaymentModeWallet, SuccessRate: 1},
		Bus:     BusConfig{QueueSize: 64, Concurrency: 2, HandlerTimeout: time.Second},
	}
}
