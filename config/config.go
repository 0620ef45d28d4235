package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Config reúne toda a configuração do processo, lida do ambiente uma única
// vez em main e injetada nos componentes.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret     string
	TokenValidity time.Duration

	PayPalAPIBase   string
	PayPalClientID  string
	PayPalSecret    string
	PayPalPartnerID string
	AppBaseURL      string

	MinListingPrice    decimal.Decimal
	ReconcilerInterval time.Duration
}

// Load monta a configuração a partir das variáveis de ambiente.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		PayPalAPIBase:   getEnv("PAYPAL_API_BASE", "https://api-m.sandbox.paypal.com"),
		PayPalClientID:  os.Getenv("PAYPAL_CLIENT_ID_SANDBOX"),
		PayPalSecret:    os.Getenv("PAYPAL_SECRET_KEY_SANDBOX"),
		PayPalPartnerID: os.Getenv("PAYPAL_PARTNER_ID_SANDBOX"),
		AppBaseURL:      getEnv("APP_BASE_URL", "http://localhost:8080"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL é obrigatória")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET é obrigatória")
	}

	validity, err := time.ParseDuration(getEnv("TOKEN_VALIDITY", "24h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_VALIDITY inválida: %w", err)
	}
	cfg.TokenValidity = validity

	minPrice, err := decimal.NewFromString(getEnv("MIN_LISTING_PRICE", "0.50"))
	if err != nil {
		return nil, fmt.Errorf("MIN_LISTING_PRICE inválido: %w", err)
	}
	cfg.MinListingPrice = minPrice

	interval, err := time.ParseDuration(getEnv("RECONCILER_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("RECONCILER_INTERVAL inválido: %w", err)
	}
	cfg.ReconcilerInterval = interval

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
