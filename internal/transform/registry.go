package transform

import (
	"tabular/internal/pattern"
	"tabular/internal/rawdata"
	"tabular/internal/spec"
	"tabular/internal/stats"
	"tabular/internal/table"
)

// Transformer converts raw results into a fresh table model.
type Transformer interface {
	Description() string
	// Columns lists candidate columns for configuration, without running the
	// transform. It must not modify results.
	Columns(results []rawdata.Result) []table.Column
	Apply(results []rawdata.Result, panel spec.Panel) (*table.Model, error)
}

const (
	TimeseriesToRows       = "timeseries_to_rows"
	TimeseriesToColumns    = "timeseries_to_columns"
	TimeseriesAggregations = "timeseries_aggregations"
	Annotations            = "annotations"
	Table                  = "table"
	JSON                   = "json"
)

// Info describes a registered transformer.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type options struct {
	stats  stats.Engine
	styles pattern.Compiler
	search pattern.Compiler
	extra  []Info
	custom map[string]Transformer
}

type Option func(*options)

// WithStats replaces the statistics engine used for aggregations.
func WithStats(e stats.Engine) Option { return func(o *options) { o.stats = e } }

// WithStyleCompiler replaces the compiler for column style patterns.
func WithStyleCompiler(c pattern.Compiler) Option { return func(o *options) { o.styles = c } }

// WithSearchCompiler replaces the compiler for table filter queries.
func WithSearchCompiler(c pattern.Compiler) Option { return func(o *options) { o.search = c } }

// WithTransformer registers t under name, replacing a built-in of the same
// name.
func WithTransformer(name string, t Transformer) Option {
	return func(o *options) {
		if o.custom == nil {
			o.custom = map[string]Transformer{}
		}
		if _, dup := o.custom[name]; !dup {
			o.extra = append(o.extra, Info{Name: name})
		}
		o.custom[name] = t
	}
}

// Registry is the name -> Transformer mapping. It is not modified after
// NewRegistry returns and is safe for concurrent use.
type Registry struct {
	transformers map[string]Transformer
	names        []string
	styles       pattern.Compiler
}

func NewRegistry(opts ...Option) *Registry {
	o := options{stats: stats.Default, styles: pattern.Style, search: pattern.Search}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{transformers: map[string]Transformer{}, styles: o.styles}
	r.register(TimeseriesToRows, rowsFromSeries{})
	r.register(TimeseriesToColumns, columnsFromSeries{})
	r.register(TimeseriesAggregations, aggregations{engine: o.stats})
	r.register(Annotations, annotations{})
	r.register(Table, tableMerge{search: o.search})
	r.register(JSON, documents{})
	for _, info := range o.extra {
		r.register(info.Name, o.custom[info.Name])
	}
	return r
}

func (r *Registry) register(name string, t Transformer) {
	if _, ok := r.transformers[name]; !ok {
		r.names = append(r.names, name)
	}
	r.transformers[name] = t
}

// Get returns the transformer registered under name.
func (r *Registry) Get(name string) (Transformer, error) {
	t, ok := r.transformers[name]
	if !ok {
		return nil, &UnknownTransformerError{Name: name}
	}
	return t, nil
}

// Names lists the registered transformers in registration order.
func (r *Registry) Names() []Info {
	out := make([]Info, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, Info{Name: n, Description: r.transformers[n].Description()})
	}
	return out
}

// Columns runs column discovery of the named transformer.
func (r *Registry) Columns(name string, results []rawdata.Result) ([]table.Column, error) {
	t, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	cols := t.Columns(results)
	if cols == nil {
		cols = []table.Column{}
	}
	return cols, nil
}
