package transform

import (
	"fmt"

	"github.com/Velocidex/ordereddict"

	"tabular/internal/flatten"
	"tabular/internal/rawdata"
	"tabular/internal/spec"
	"tabular/internal/table"
)

// maxSampledDocs bounds column discovery per docs result.
const maxSampledDocs = 100

// documents projects flattened document paths into columns, or renders each
// document as JSON text when no columns are selected.
type documents struct{}

func (documents) Description() string { return "JSON Data" }

func (documents) Columns(results []rawdata.Result) []table.Column {
	seen := ordereddict.NewDict()
	for _, r := range results {
		d, ok := r.(*rawdata.Docs)
		if !ok {
			continue
		}
		sample := d.Datapoints
		if len(sample) > maxSampledDocs {
			sample = sample[:maxSampledDocs]
		}
		for _, doc := range sample {
			for _, path := range flatten.Keys(doc, flatten.Options{}) {
				if _, dup := seen.Get(path); !dup {
					seen.Set(path, true)
				}
			}
		}
	}

	cols := make([]table.Column, 0, seen.Len())
	for _, path := range seen.Keys() {
		cols = append(cols, table.Column{Text: path, Value: path})
	}
	return cols
}

func (documents) Apply(results []rawdata.Result, panel spec.Panel) (*table.Model, error) {
	m := table.New()
	for _, sel := range panel.Columns {
		m.AddColumn(table.Column{Text: sel.Text})
	}
	if len(m.Columns) == 0 {
		m.AddColumn(table.Column{Text: "JSON"})
	}

	for i, r := range results {
		for _, doc := range documentsOf(r) {
			if len(panel.Columns) > 0 && flatten.IsContainer(doc) {
				flat := flatten.Flatten(doc, flatten.Options{})
				cells := make([]table.Cell, len(panel.Columns))
				for j, sel := range panel.Columns {
					v, ok := flat.Get(sel.Value)
					if !ok {
						continue
					}
					c, err := documentCell(v)
					if err != nil {
						return nil, fmt.Errorf("result %d: %w", i, err)
					}
					cells[j] = c
				}
				m.AddRow(cells...)
				continue
			}
			text, err := rawdata.MarshalDocument(doc)
			if err != nil {
				return nil, fmt.Errorf("result %d: %w", i, err)
			}
			m.AddRow(table.StringCell(string(text)))
		}
	}
	return m, nil
}

// documentsOf returns the documents carried by r. Series datapoints count as
// [value, time] documents.
func documentsOf(r rawdata.Result) []any {
	switch v := r.(type) {
	case *rawdata.Docs:
		return v.Datapoints
	case *rawdata.Series:
		out := make([]any, 0, len(v.Datapoints))
		for _, dp := range v.Datapoints {
			var value any
			if dp.Value != nil {
				value = *dp.Value
			}
			out = append(out, []any{value, dp.Time})
		}
		return out
	}
	return nil
}

// documentCell converts a flattened leaf. Empty containers keep their JSON
// form.
func documentCell(v any) (table.Cell, error) {
	if !flatten.IsContainer(v) {
		return table.CellOf(v), nil
	}
	text, err := rawdata.MarshalDocument(v)
	if err != nil {
		return table.Cell{}, err
	}
	return table.StringCell(string(text)), nil
}
