// Package stats summarizes time-series datapoints for aggregation tables.
package stats

import (
	"math"

	"tabular/internal/rawdata"
)

// Stat names one summary statistic.
type Stat string

const (
	Avg     Stat = "avg"
	Min     Stat = "min"
	Max     Stat = "max"
	Total   Stat = "total"
	Current Stat = "current"
	Count   Stat = "count"
)

// All lists the statistics in display order, each with its column label.
var All = []struct {
	Stat  Stat
	Label string
}{
	{Avg, "Avg"},
	{Min, "Min"},
	{Max, "Max"},
	{Total, "Total"},
	{Current, "Current"},
	{Count, "Count"},
}

// NullMode decides how null datapoints take part in a summary.
type NullMode string

const (
	Connected  NullMode = "connected"
	NullGap    NullMode = "null"
	NullAsZero NullMode = "null as zero"
)

// Summary holds the statistics of one series. Absent entries had no value.
type Summary struct {
	values map[Stat]float64
}

func (s Summary) Get(stat Stat) (float64, bool) {
	v, ok := s.values[stat]
	return v, ok
}

// Engine computes series statistics.
type Engine interface {
	Summarize(points []rawdata.Datapoint, mode NullMode) Summary
}

// Default is the built-in engine.
var Default Engine = engine{}

type engine struct{}

func (engine) Summarize(points []rawdata.Datapoint, mode NullMode) Summary {
	var (
		total, current float64
		count          int
		lo             = math.Inf(1)
		hi             = math.Inf(-1)
	)
	for _, p := range points {
		var v float64
		switch {
		case p.Value != nil:
			v = *p.Value
		case mode == NullAsZero:
			v = 0
		default:
			continue
		}
		total += v
		count++
		current = v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	s := Summary{values: map[Stat]float64{
		Total: total,
		Count: float64(count),
	}}
	if count > 0 {
		s.values[Avg] = total / float64(count)
		s.values[Min] = lo
		s.values[Max] = hi
		s.values[Current] = current
	}
	return s
}
