package engine

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tabular/internal/logging"
	"tabular/internal/transport"
)

type Engine struct {
	transport *transport.Server
	metrics   *http.Server
	wait      time.Duration
}

// Run serves gRPC until ctx is cancelled, then stops gracefully.
func (e *Engine) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		logging.L().Info("engine stopping")
		e.stop()
	}()

	logging.L().Info("engine serving", "grpc", e.transport.Addr().String())
	return e.transport.Serve()
}

func (e *Engine) stop() {
	done := make(chan struct{})
	go func() {
		e.transport.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(e.wait):
		logging.L().Warn("engine: graceful stop timed out")
	}

	if e.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), e.wait)
		defer cancel()
		if err := e.metrics.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.L().Warn("engine: metrics shutdown", "err", err)
		}
	}
}
