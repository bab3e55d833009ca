package table

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_AddRowFitsColumns(t *testing.T) {
	m := New()
	m.AddColumn(Column{Text: "Time", Type: "date"})
	m.AddColumn(Column{Text: "Value"})

	m.AddRow(TimeCell(1000))
	m.AddRow(TimeCell(2000), NumberCell(1), StringCell("extra"))

	require.NoError(t, m.Validate())
	assert.True(t, m.Rows[0][1].IsUndefined())
	assert.Len(t, m.Rows[1], 2)
}

func TestModel_ValidateReportsMisalignedRow(t *testing.T) {
	m := &Model{
		Columns: []Column{{Text: "a"}, {Text: "b"}},
		Rows:    []Row{{NumberCell(1)}},
	}
	assert.Error(t, m.Validate())
}

func TestColumn_Label(t *testing.T) {
	empty, usage := "", "usage"
	assert.Equal(t, "cpu", Column{Text: "cpu"}.Label())
	assert.Equal(t, "cpu", Column{Text: "cpu", Alias: &empty}.Label())
	assert.Equal(t, "usage", Column{Text: "cpu", Alias: &usage}.Label())
}

func TestModel_JSONShape(t *testing.T) {
	m := New()
	m.AddColumn(Column{Text: "Time", Type: "date"})
	m.AddColumn(Column{Text: "Metric"})
	m.AddColumn(Column{Text: "Tags"})
	m.AddRow(TimeCell(1500000000000), StringCell("cpu"), TagsCell([]string{"a", "b"}))
	m.AddRow(TimeCell(1500000001000))

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"columns": [{"text":"Time","type":"date"},{"text":"Metric"},{"text":"Tags"}],
		"rows": [[1500000000000,"cpu",["a","b"]],[1500000001000,null,null]]
	}`, string(b))

	var back Model
	require.NoError(t, json.Unmarshal(b, &back))
	require.Len(t, back.Rows, 2)
	assert.Equal(t, Number, back.Rows[0][0].Kind())
	assert.Equal(t, []string{"a", "b"}, back.Rows[0][2].Value())
	assert.Equal(t, Null, back.Rows[1][1].Kind())
}
