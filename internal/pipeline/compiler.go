package pipeline

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"tabular/internal/client"
	"tabular/internal/config"
	"tabular/internal/spec"
	"tabular/internal/transform"
	"tabular/sink"
	"tabular/sink/kafka"
	"tabular/sink/stdout"
)

type options struct {
	registry *transform.Registry
	out      io.Writer
}

type Option func(*options)

// WithRegistry sets the registry used by in-process clients.
func WithRegistry(r *transform.Registry) Option { return func(o *options) { o.registry = r } }

// WithOutput redirects the stdout sink.
func WithOutput(w io.Writer) Option { return func(o *options) { o.out = w } }

// Compile loads a request file and wires its client and sinks.
func Compile(path string, opts ...Option) (*Runner, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg, dataPath, err := config.LoadRequestSpec(path)
	if err != nil {
		return nil, err
	}
	req := spec.Request{Panel: cfg.Panel}
	if dataPath != "" {
		if req.Data, err = os.ReadFile(dataPath); err != nil {
			return nil, fmt.Errorf("data: %w", err)
		}
	}

	cli, err := client.New(cfg.Client, o.registry)
	if err != nil {
		return nil, err
	}
	r := NewRunner(cli, req)

	for _, name := range cfg.Sinks {
		s, err := sink.NewAdapter(name)
		if err != nil {
			_ = r.Close()
			return nil, err
		}
		if err := configure(name, s, cfg.SinkConfigs, o); err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("sink %s: %w", name, err)
		}
		r.AddSink(name, s)
	}
	return r, nil
}

func configure(name string, s sink.Adapter, blocks spec.SinkConfigs, o options) error {
	switch name {
	case "stdout":
		var c stdout.Config
		if err := decodeBlock(blocks.Stdout, &c); err != nil {
			return err
		}
		c.Writer = o.out
		return s.Configure(c)
	case "kafka":
		var c kafka.Config
		if err := decodeBlock(blocks.Kafka, &c); err != nil {
			return err
		}
		return s.Configure(c)
	}
	return fmt.Errorf("no config block for sink %q", name)
}

func decodeBlock(n yaml.Node, v any) error {
	if n.Kind == 0 {
		return nil
	}
	return n.Decode(v)
}
