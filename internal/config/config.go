package config

import (
	"errors"
	"os"
	"strings"
)

// Agilpay holds the gateway credentials and endpoints. Defaults are the
// published sandbox credentials so a local instance works out of the box.
type Agilpay struct {
	ClientID     string
	ClientSecret string
	MerchantKey  string
	TokenURL     string
	PaymentURL   string
}

// Config is loaded once at startup and never mutated afterwards.
type Config struct {
	Port          string
	DatabaseURL   string
	StaticDir     string
	KafkaBrokers  string
	CallbackTopic string
	Agilpay       Agilpay
}

func Load() (Config, error) {
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if db == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}

	return Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   db,
		StaticDir:     strings.TrimSpace(os.Getenv("STATIC_DIR")),
		KafkaBrokers:  strings.TrimSpace(os.Getenv("KAFKA_BROKERS")),
		CallbackTopic: getenv("CALLBACK_TOPIC", "payment-callbacks"),
		Agilpay: Agilpay{
			ClientID:     getenv("AGILPAY_CLIENT_ID", "API-001"),
			ClientSecret: getenv("AGILPAY_CLIENT_SECRET", "Dynapay"),
			MerchantKey:  getenv("AGILPAY_MERCHANT_KEY", "TEST-001"),
			TokenURL:     getenv("AGILPAY_TOKEN_URL", "https://sandbox-webapi.agilpay.net/oauth/paymenttoken"),
			PaymentURL:   getenv("AGILPAY_PAYMENT_URL", "https://sandbox-webpay.agilpay.net/Payment"),
		},
	}, nil
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
