// Package client runs transforms either in-process or against a remote
// table service behind one interface, so callers can swap the two.
package client

import (
	"context"
	"fmt"
	"time"

	"tabular/internal/rawdata"
	"tabular/internal/spec"
	"tabular/internal/table"
	"tabular/internal/transform"
	"tabular/internal/transport"
)

type Client interface {
	Transform(ctx context.Context, req spec.Request) (*table.Model, error)
	Columns(ctx context.Context, req spec.Request) ([]table.Column, error)
	Transformers(ctx context.Context) ([]transform.Info, error)
	Close() error
}

// New builds the client a request file asks for.
func New(cs spec.ClientSpec, registry *transform.Registry) (Client, error) {
	switch cs.Type {
	case "", "inproc":
		return NewInProcess(registry), nil
	case "grpc":
		if cs.Address == "" {
			return nil, fmt.Errorf("grpc client: address is required")
		}
		c, err := NewGRPC(cs.Address, time.Duration(cs.TimeoutMS)*time.Millisecond)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unsupported client type %q", cs.Type)
}

// InProcess runs transforms on a local registry.
type InProcess struct {
	registry *transform.Registry
}

func NewInProcess(registry *transform.Registry) *InProcess {
	if registry == nil {
		registry = transform.Default()
	}
	return &InProcess{registry: registry}
}

func (c *InProcess) Transform(_ context.Context, req spec.Request) (*table.Model, error) {
	results, err := decode(req)
	if err != nil {
		return nil, err
	}
	return c.registry.Transform(results, req.Panel)
}

func (c *InProcess) Columns(_ context.Context, req spec.Request) ([]table.Column, error) {
	results, err := decode(req)
	if err != nil {
		return nil, err
	}
	return c.registry.Columns(req.Panel.Transform, results)
}

func (c *InProcess) Transformers(context.Context) ([]transform.Info, error) {
	return c.registry.Names(), nil
}

func (c *InProcess) Close() error { return nil }

func decode(req spec.Request) ([]rawdata.Result, error) {
	if len(req.Data) == 0 {
		return nil, nil
	}
	return rawdata.Decode(req.Data)
}

// GRPC calls a remote table service, bounding each call by timeout.
type GRPC struct {
	cli     *transport.Client
	timeout time.Duration
}

func NewGRPC(address string, timeout time.Duration) (*GRPC, error) {
	cli, err := transport.Dial(address)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	return &GRPC{cli: cli, timeout: timeout}, nil
}

func (c *GRPC) Transform(ctx context.Context, req spec.Request) (*table.Model, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	return c.cli.Transform(ctx, req)
}

func (c *GRPC) Columns(ctx context.Context, req spec.Request) ([]table.Column, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	return c.cli.Columns(ctx, req)
}

func (c *GRPC) Transformers(ctx context.Context) ([]transform.Info, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	return c.cli.Transformers(ctx)
}

func (c *GRPC) Close() error { return c.cli.Close() }

func (c *GRPC) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
