// Package rawdata declares the raw query result shapes that transformers
// consume, and decodes them from JSON.
package rawdata

import (
	"encoding/json"
	"fmt"
	"strconv"

	"tabular/internal/table"
)

// Result is one raw query result. The concrete types are *Series, *Table,
// *Docs and *Annotation.
type Result interface {
	ResultType() string
}

const (
	TypeSeries     = "timeseries"
	TypeTable      = "table"
	TypeDocs       = "docs"
	TypeAnnotation = "annotation"
)

// Datapoint is a [value, timestampMs] pair. A nil Value is a null point.
type Datapoint struct {
	Value *float64
	Time  int64
}

func Point(v float64, ts int64) Datapoint { return Datapoint{Value: &v, Time: ts} }
func NullPoint(ts int64) Datapoint        { return Datapoint{Time: ts} }

// Cell returns the value as a Number cell, or Null for a null point.
func (d Datapoint) Cell() table.Cell {
	if d.Value == nil {
		return table.NullCell()
	}
	return table.NumberCell(*d.Value)
}

func (d Datapoint) MarshalJSON() ([]byte, error) {
	var v any
	if d.Value != nil {
		v = *d.Value
	}
	return json.Marshal([]any{v, d.Time})
}

func (d *Datapoint) UnmarshalJSON(data []byte) error {
	var pair []json.Number
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("datapoint %s: %w", data, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("datapoint %s: want [value, timestamp]", data)
	}
	*d = Datapoint{}
	if pair[0] != "" {
		v, err := pair[0].Float64()
		if err != nil {
			return fmt.Errorf("datapoint value %q: %w", pair[0], err)
		}
		d.Value = &v
	}
	ts, err := parseTimestamp(pair[1])
	if err != nil {
		return err
	}
	d.Time = ts
	return nil
}

type Series struct {
	Target     string      `json:"target"`
	Datapoints []Datapoint `json:"datapoints"`
}

func (*Series) ResultType() string { return TypeSeries }

type Table struct {
	Columns []table.Column `json:"columns"`
	Rows    []table.Row    `json:"rows"`
}

func (*Table) ResultType() string { return TypeTable }

func (t *Table) MarshalJSON() ([]byte, error) {
	type plain Table
	return json.Marshal(struct {
		Type string `json:"type"`
		*plain
	}{TypeTable, (*plain)(t)})
}

// Docs holds semi-structured documents. Objects decoded from JSON are
// *ordereddict.Dict so their key order survives.
type Docs struct {
	Datapoints []any `json:"datapoints"`
}

func (*Docs) ResultType() string { return TypeDocs }

func (d *Docs) MarshalJSON() ([]byte, error) {
	buf := []byte(`{"type":"docs","datapoints":[`)
	for i, doc := range d.Datapoints {
		if i > 0 {
			buf = append(buf, ',')
		}
		b, err := MarshalDocument(doc)
		if err != nil {
			return nil, err
		}
		buf = append(buf, b...)
	}
	return append(buf, "]}"...), nil
}

type Annotation struct {
	Min   int64    `json:"min"`
	Title string   `json:"title"`
	Text  string   `json:"text"`
	Tags  []string `json:"tags"`
}

func (*Annotation) ResultType() string { return TypeAnnotation }

func parseTimestamp(n json.Number) (int64, error) {
	if ts, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return ts, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("timestamp %q: %w", n, err)
	}
	return int64(f), nil
}
