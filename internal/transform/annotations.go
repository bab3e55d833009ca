package transform

import (
	"tabular/internal/rawdata"
	"tabular/internal/spec"
	"tabular/internal/table"
)

type annotations struct{}

func (annotations) Description() string                      { return "Annotations" }
func (annotations) Columns([]rawdata.Result) []table.Column { return nil }

func (annotations) Apply(results []rawdata.Result, _ spec.Panel) (*table.Model, error) {
	m := table.New()
	m.AddColumn(timeColumn())
	m.AddColumn(table.Column{Text: "Title"})
	m.AddColumn(table.Column{Text: "Text"})
	m.AddColumn(table.Column{Text: "Tags"})

	for _, r := range results {
		a, ok := r.(*rawdata.Annotation)
		if !ok {
			continue
		}
		m.AddRow(table.TimeCell(a.Min), table.StringCell(a.Title), table.StringCell(a.Text), table.TagsCell(a.Tags))
	}
	return m, nil
}
