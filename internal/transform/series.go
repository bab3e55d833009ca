package transform

import (
	"strconv"

	"github.com/Velocidex/ordereddict"

	"tabular/internal/rawdata"
	"tabular/internal/spec"
	"tabular/internal/table"
)

func timeColumn() table.Column { return table.Column{Text: "Time", Type: "date"} }

func seriesOf(results []rawdata.Result) []*rawdata.Series {
	var out []*rawdata.Series
	for _, r := range results {
		if s, ok := r.(*rawdata.Series); ok {
			out = append(out, s)
		}
	}
	return out
}

// rowsFromSeries emits one [time, target, value] row per datapoint.
type rowsFromSeries struct{}

func (rowsFromSeries) Description() string                      { return "Time series to rows" }
func (rowsFromSeries) Columns([]rawdata.Result) []table.Column { return nil }

func (rowsFromSeries) Apply(results []rawdata.Result, _ spec.Panel) (*table.Model, error) {
	m := table.New()
	m.AddColumn(timeColumn())
	m.AddColumn(table.Column{Text: "Metric"})
	m.AddColumn(table.Column{Text: "Value"})

	for _, s := range seriesOf(results) {
		for _, dp := range s.Datapoints {
			m.AddRow(table.TimeCell(dp.Time), table.StringCell(s.Target), dp.Cell())
		}
	}
	return m, nil
}

// columnsFromSeries pivots series into one column each, joined on the
// timestamp. Rows come out in first-seen timestamp order.
type columnsFromSeries struct{}

func (columnsFromSeries) Description() string                      { return "Time series to columns" }
func (columnsFromSeries) Columns([]rawdata.Result) []table.Column { return nil }

func (columnsFromSeries) Apply(results []rawdata.Result, _ spec.Panel) (*table.Model, error) {
	series := seriesOf(results)
	m := table.New()
	m.AddColumn(timeColumn())

	byTime := ordereddict.NewDict()
	for i, s := range series {
		m.AddColumn(table.Column{Text: s.Target})
		for _, dp := range s.Datapoints {
			key := strconv.FormatInt(dp.Time, 10)
			var row table.Row
			if v, ok := byTime.Get(key); ok {
				row = v.(table.Row)
			} else {
				row = make(table.Row, len(series)+1)
				row[0] = table.TimeCell(dp.Time)
				byTime.Set(key, row)
			}
			row[i+1] = dp.Cell()
		}
	}

	for _, key := range byTime.Keys() {
		v, _ := byTime.Get(key)
		m.AddRow(v.(table.Row)...)
	}
	return m, nil
}
