// Package config provides runtime configuration values for the gateway.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration knobs for the HTTP server, the backend
// clients and telemetry.
type Config struct {
	HTTPAddr        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	Pretty          bool
	MaxBodyBytes    int64

	IdentityServiceURL string
	CatalogServiceURL  string
	OrderServiceURL    string
	PaymentServiceURL  string

	BackendReadTimeout  time.Duration
	BackendWriteTimeout time.Duration

	OTELEndpoint string
	OTELService  string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolenv(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults. Backend base
// URLs default to the compose-style service hostnames.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		RequestTimeout:  durenvs("REQUEST_TIMEOUT", 30),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
		Pretty:          boolenv("PRETTY", false),
		MaxBodyBytes:    int64(atoienv("MAX_BODY_BYTES", 1<<20)),

		IdentityServiceURL: getenv("IDENTITY_SERVICE_URL", "http://identity-service:5000"),
		CatalogServiceURL:  getenv("CATALOG_SERVICE_URL", "http://catalog-service:5000"),
		OrderServiceURL:    getenv("ORDER_SERVICE_URL", "http://order-service:5000"),
		PaymentServiceURL:  getenv("PAYMENT_SERVICE_URL", "http://payment-service:5000"),

		BackendReadTimeout:  durenvs("BACKEND_READ_TIMEOUT", 5),
		BackendWriteTimeout: durenvs("BACKEND_WRITE_TIMEOUT", 10),

		OTELEndpoint: getenv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELService:  getenv("OTEL_SERVICE_NAME", "gateway"),
	}
}
