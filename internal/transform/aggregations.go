package transform

import (
	"tabular/internal/rawdata"
	"tabular/internal/spec"
	"tabular/internal/stats"
	"tabular/internal/table"
)

var defaultAggregate = []spec.ColumnSelector{{Text: "Avg", Value: string(stats.Avg)}}

// aggregations emits one row per series holding the selected statistics.
type aggregations struct {
	engine stats.Engine
}

func (aggregations) Description() string { return "Time series aggregations" }

func (aggregations) Columns([]rawdata.Result) []table.Column {
	cols := make([]table.Column, 0, len(stats.All))
	for _, s := range stats.All {
		cols = append(cols, table.Column{Text: s.Label, Value: string(s.Stat)})
	}
	return cols
}

func (a aggregations) Apply(results []rawdata.Result, panel spec.Panel) (*table.Model, error) {
	selected := panel.Columns
	if len(selected) == 0 {
		selected = defaultAggregate
	}

	m := table.New()
	m.AddColumn(table.Column{Text: "Metric"})
	for _, sel := range selected {
		m.AddColumn(table.Column{Text: sel.Text})
	}

	for _, s := range seriesOf(results) {
		summary := a.engine.Summarize(s.Datapoints, stats.Connected)
		cells := make([]table.Cell, 0, len(selected)+1)
		cells = append(cells, table.StringCell(s.Target))
		for _, sel := range selected {
			var c table.Cell
			if v, ok := summary.Get(stats.Stat(sel.Value)); ok {
				c = table.NumberCell(v)
			}
			cells = append(cells, c)
		}
		m.AddRow(cells...)
	}
	return m, nil
}
