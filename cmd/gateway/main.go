package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/shopmesh/gateway/internal/backend"
	"github.com/shopmesh/gateway/internal/config"
	"github.com/shopmesh/gateway/internal/eventbus"
	"github.com/shopmesh/gateway/internal/obs"
	"github.com/shopmesh/gateway/internal/otel"
	"github.com/shopmesh/gateway/internal/resolvers"
	"github.com/shopmesh/gateway/internal/server"
)

const usage = `gateway — federated GraphQL gateway over HTTP JSON services

FLAGS:
  -server.addr <addr>        HTTP listen address (default: :8080 or HTTP_ADDR)
  -server.pretty             Pretty-print JSON responses
  -server.timeout <duration> Per-request timeout, e.g. 10s (default: REQUEST_TIMEOUT)
  -backend <name=url>        Override a backend base URL. Repeatable, e.g.
                               -backend catalog=http://localhost:8001
                             Known names: identity, catalog, order, payment.
  -otel.endpoint <addr>      OTLP collector endpoint (default: OTEL_EXPORTER_OTLP_ENDPOINT)
  -otel.service <name>       OpenTelemetry service name (default: gateway)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

type backendFlag struct {
	m map[string]string
}

func (b *backendFlag) String() string { return "" }

func (b *backendFlag) Set(v string) error {
	name, base, ok := strings.Cut(v, "=")
	name = strings.TrimSpace(name)
	base = strings.TrimSpace(base)
	if !ok || name == "" || base == "" {
		return fmt.Errorf("invalid backend %q", v)
	}
	if b.m == nil {
		b.m = map[string]string{}
	}
	b.m[name] = base
	return nil
}

func run(args []string) error {
	cfg := config.Load()

	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer)) // silence automatic output
	fs.StringVar(&cfg.HTTPAddr, "server.addr", cfg.HTTPAddr, "HTTP listen address")
	fs.BoolVar(&cfg.Pretty, "server.pretty", cfg.Pretty, "Pretty-print JSON responses")
	fs.DurationVar(&cfg.RequestTimeout, "server.timeout", cfg.RequestTimeout, "Per-request timeout")
	var bf backendFlag
	fs.Var(&bf, "backend", "Override a backend base URL")
	fs.StringVar(&cfg.OTELEndpoint, "otel.endpoint", cfg.OTELEndpoint, "OTLP collector endpoint")
	fs.StringVar(&cfg.OTELService, "otel.service", cfg.OTELService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, usage)
		return err
	}

	services := map[string]string{
		resolvers.ServiceIdentity: cfg.IdentityServiceURL,
		resolvers.ServiceCatalog:  cfg.CatalogServiceURL,
		resolvers.ServiceOrder:    cfg.OrderServiceURL,
		resolvers.ServicePayment:  cfg.PaymentServiceURL,
	}
	for name, base := range bf.m {
		if _, ok := services[name]; !ok {
			return fmt.Errorf("unknown backend %q", name)
		}
		services[name] = base
	}

	obs.InitLogger()
	eventbus.Use(eventbus.New())
	obs.RegisterEventLogging()

	shutdownTracing, err := otel.Setup(cfg.OTELEndpoint, cfg.OTELService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	client := backend.NewClient(services,
		backend.WithReadTimeout(cfg.BackendReadTimeout),
		backend.WithWriteTimeout(cfg.BackendWriteTimeout),
	)

	sch, err := resolvers.NewSchema()
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}

	sopts := []server.Option{
		server.WithTimeout(cfg.RequestTimeout),
		server.WithMaxBodyBytes(cfg.MaxBodyBytes),
		server.WithCORS("*"),
	}
	if cfg.Pretty {
		sopts = append(sopts, server.WithPretty())
	}
	gql, err := server.New(sch, resolvers.New(client), sopts...)
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", gql)
	mux.Handle("/health", server.NewHealthHandler(cfg.OTELService, "/graphql", client.Services()))
	mux.Handle("/", http.RedirectHandler("/graphql", http.StatusFound))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		obs.Logger.Info("gateway listening", "addr", cfg.HTTPAddr, "backends", client.Services())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	obs.Logger.Info("gateway stopped")
	return nil
}
