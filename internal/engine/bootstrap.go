package engine

import (
	"context"
	"fmt"

	"tabular/internal/config"
	"tabular/internal/telemetry"
	"tabular/internal/transform"
	"tabular/internal/transport"
)

func Bootstrap(_ context.Context, cfg config.Settings, registry *transform.Registry) (*Engine, error) {
	// 1. transport server
	srv, err := transport.StartServer(cfg.GRPCAddr, registry)
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}

	e := &Engine{transport: srv, wait: cfg.ShutdownWait}

	// 2. metrics
	if cfg.MetricsAddr != "" {
		e.metrics = telemetry.Expose(cfg.MetricsAddr)
	}
	return e, nil
}
