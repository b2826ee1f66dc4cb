package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("PRETTY", "")
	t.Setenv("MAX_BODY_BYTES", "")
	t.Setenv("IDENTITY_SERVICE_URL", "")
	t.Setenv("CATALOG_SERVICE_URL", "")
	t.Setenv("ORDER_SERVICE_URL", "")
	t.Setenv("PAYMENT_SERVICE_URL", "")
	t.Setenv("BACKEND_READ_TIMEOUT", "")
	t.Setenv("BACKEND_WRITE_TIMEOUT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_SERVICE_NAME", "")
	c := Load()
	if c.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr default")
	}
	if c.RequestTimeout != 30*time.Second || c.ShutdownTimeout != 15*time.Second {
		t.Fatalf("timeout defaults")
	}
	if c.Pretty {
		t.Fatalf("Pretty default")
	}
	if c.MaxBodyBytes != 1<<20 {
		t.Fatalf("MaxBodyBytes default")
	}
	if c.CatalogServiceURL != "http://catalog-service:5000" {
		t.Fatalf("CatalogServiceURL default")
	}
	if c.BackendReadTimeout != 5*time.Second || c.BackendWriteTimeout != 10*time.Second {
		t.Fatalf("backend timeout defaults")
	}
	if c.OTELEndpoint != "" || c.OTELService != "gateway" {
		t.Fatalf("otel defaults")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("REQUEST_TIMEOUT", "5")
	t.Setenv("PRETTY", "true")
	t.Setenv("ORDER_SERVICE_URL", "http://localhost:8002")
	t.Setenv("BACKEND_READ_TIMEOUT", "2")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	c := Load()
	if c.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr env")
	}
	if c.RequestTimeout != 5*time.Second {
		t.Fatalf("RequestTimeout env")
	}
	if !c.Pretty {
		t.Fatalf("Pretty env")
	}
	if c.OrderServiceURL != "http://localhost:8002" {
		t.Fatalf("OrderServiceURL env")
	}
	if c.BackendReadTimeout != 2*time.Second {
		t.Fatalf("BackendReadTimeout env")
	}
	if c.OTELEndpoint != "collector:4317" {
		t.Fatalf("OTELEndpoint env")
	}
}
