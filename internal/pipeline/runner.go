package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tabular/internal/client"
	"tabular/internal/logging"
	"tabular/internal/spec"
	"tabular/internal/table"
	"tabular/sink"
)

type namedSink struct {
	name string
	sink.Adapter
}

// Runner executes one transform request and delivers the table to sinks.
type Runner struct {
	client  client.Client
	request spec.Request
	sinks   []namedSink
}

func NewRunner(c client.Client, req spec.Request) *Runner {
	return &Runner{client: c, request: req}
}

func (r *Runner) AddSink(name string, s sink.Adapter) {
	r.sinks = append(r.sinks, namedSink{name: name, Adapter: s})
}

func (r *Runner) Request() spec.Request { return r.request }

// Run transforms the request and pushes the table to every sink in order.
// The table is returned even when a sink fails.
func (r *Runner) Run(ctx context.Context) (*table.Model, error) {
	name := r.request.Panel.Transform
	log := logging.L().With("run_id", uuid.NewString(), "transform", name)
	start := time.Now()

	m, err := r.client.Transform(ctx, r.request)
	if err != nil {
		log.Error("transform failed", "err", err)
		return nil, fmt.Errorf("transform %s: %w", name, err)
	}
	for _, s := range r.sinks {
		if err := s.Push(m); err != nil {
			log.Error("sink push failed", "sink", s.name, "err", err)
			return m, fmt.Errorf("sink %s: %w", s.name, err)
		}
	}
	log.Info("run complete",
		"columns", len(m.Columns),
		"rows", len(m.Rows),
		"sinks", len(r.sinks),
		"took", time.Since(start))
	return m, nil
}

// Columns lists candidate columns for the request's transformer.
func (r *Runner) Columns(ctx context.Context) ([]table.Column, error) {
	return r.client.Columns(ctx, r.request)
}

// Close closes sinks, then the client.
func (r *Runner) Close() error {
	var errs []error
	for _, s := range r.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("sink %s: %w", s.name, err))
		}
	}
	if r.client != nil {
		errs = append(errs, r.client.Close())
	}
	return errors.Join(errs...)
}
