package transform

import (
	"time"

	"tabular/internal/alias"
	"tabular/internal/logging"
	"tabular/internal/rawdata"
	"tabular/internal/spec"
	"tabular/internal/table"
	"tabular/internal/telemetry"
)

var defaultRegistry = NewRegistry()

// Default returns the registry with the built-in transformers.
func Default() *Registry { return defaultRegistry }

// TransformDataToTable runs panel.Transform from the default registry.
func TransformDataToTable(results []rawdata.Result, panel spec.Panel) (*table.Model, error) {
	return defaultRegistry.Transform(results, panel)
}

// Transform looks up panel.Transform, applies it to results and aliases the
// resulting columns with panel.Styles. An unknown name fails even when
// there are no results; no results otherwise yield an empty model.
func (r *Registry) Transform(results []rawdata.Result, panel spec.Panel) (*table.Model, error) {
	t, err := r.Get(panel.Transform)
	if err != nil {
		telemetry.ObserveTransform("unknown", 0, 0, err)
		return nil, err
	}
	if len(results) == 0 {
		return table.New(), nil
	}

	start := time.Now()
	model, err := t.Apply(results, panel)
	if err == nil {
		model.Columns, err = alias.Apply(model.Columns, panel.Styles, r.styles)
	}
	took := time.Since(start)

	if err != nil {
		telemetry.ObserveTransform(panel.Transform, 0, took, err)
		logging.L().Debug("transform failed", "transform", panel.Transform, "results", len(results), "err", err)
		return nil, err
	}
	telemetry.ObserveTransform(panel.Transform, len(model.Rows), took, nil)
	logging.L().Debug("transform applied",
		"transform", panel.Transform,
		"results", len(results),
		"columns", len(model.Columns),
		"rows", len(model.Rows),
		"took", took)
	return model, nil
}
