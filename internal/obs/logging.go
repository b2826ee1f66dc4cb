// Package obs contains observability utilities such as logging.
package obs

import (
	"context"
	"log/slog"
	"os"

	eventbus "github.com/shopmesh/gateway/internal/eventbus"
	events "github.com/shopmesh/gateway/internal/events"
	reqid "github.com/shopmesh/gateway/internal/reqid"
)

// Logger is the global structured logger used by the gateway.
//
// Logger is exported to allow other packages to use it for logging.
var Logger *slog.Logger

// InitLogger initializes the global Logger with JSON handler at info level.
func InitLogger() {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	Logger = slog.New(h)
}

// RegisterEventLogging attaches completion-event subscribers that log each
// request, operation and backend call with its duration and outcome.
func RegisterEventLogging() {
	eventbus.Subscribe(func(ctx context.Context, e events.HTTPFinish) {
		rid, _ := reqid.FromContext(ctx)
		Logger.Info("http request",
			"request_id", rid,
			"method", e.Request.Method,
			"path", e.Request.URL.Path,
			"status", e.Status,
			"duration_ms", e.Duration.Milliseconds(),
		)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.GraphQLFinish) {
		rid, _ := reqid.FromContext(ctx)
		Logger.Info("graphql operation",
			"request_id", rid,
			"operation_name", e.OperationName,
			"operation_type", e.OperationType,
			"error_count", len(e.Errors),
			"duration_ms", e.Duration.Milliseconds(),
		)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.BackendCallFinish) {
		rid, _ := reqid.FromContext(ctx)
		if e.Err != nil {
			Logger.Warn("backend call failed",
				"request_id", rid,
				"service", e.Service,
				"method", e.Method,
				"path", e.Path,
				"status", e.Status,
				"error", e.Err.Error(),
				"duration_ms", e.Duration.Milliseconds(),
			)
			return
		}
		Logger.Info("backend call",
			"request_id", rid,
			"service", e.Service,
			"method", e.Method,
			"path", e.Path,
			"status", e.Status,
			"duration_ms", e.Duration.Milliseconds(),
		)
	})
}
