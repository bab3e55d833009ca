package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabular/internal/rawdata"
	"tabular/internal/spec"
	"tabular/internal/stats"
	"tabular/internal/table"
)

func TestRowsFromSeries(t *testing.T) {
	results := []rawdata.Result{
		series("cpu", rawdata.Point(1, 1000), rawdata.NullPoint(2000)),
		series("mem", rawdata.Point(7, 1000)),
	}

	m, err := rowsFromSeries{}.Apply(results, spec.Panel{})
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, []string{"Time", "Metric", "Value"}, texts(m.Columns))
	assert.Equal(t, "date", m.Columns[0].Type)
	require.Len(t, m.Rows, 3)
	assert.Equal(t, table.Row{table.TimeCell(1000), str("cpu"), num(1)}, m.Rows[0])
	assert.Equal(t, table.Row{table.TimeCell(2000), str("cpu"), table.NullCell()}, m.Rows[1])
	assert.Equal(t, table.Row{table.TimeCell(1000), str("mem"), num(7)}, m.Rows[2])
}

func TestColumnsFromSeries_JoinsOnTimestamp(t *testing.T) {
	results := []rawdata.Result{
		series("a", rawdata.Point(1, 3000), rawdata.Point(2, 1000)),
		series("b", rawdata.Point(5, 1000), rawdata.Point(6, 2000)),
	}

	m, err := columnsFromSeries{}.Apply(results, spec.Panel{})
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, []string{"Time", "a", "b"}, texts(m.Columns))
	require.Len(t, m.Rows, 3)
	// first-seen timestamp order, not sorted
	assert.Equal(t, table.Row{table.TimeCell(3000), num(1), {}}, m.Rows[0])
	assert.Equal(t, table.Row{table.TimeCell(1000), num(2), num(5)}, m.Rows[1])
	assert.Equal(t, table.Row{table.TimeCell(2000), {}, num(6)}, m.Rows[2])
	assert.True(t, m.Rows[2][1].IsUndefined())
}

func TestColumnsFromSeries_IgnoresOtherResults(t *testing.T) {
	results := []rawdata.Result{
		&rawdata.Annotation{Min: 1, Title: "x"},
		series("a", rawdata.Point(1, 10)),
	}
	m, err := columnsFromSeries{}.Apply(results, spec.Panel{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Time", "a"}, texts(m.Columns))
	assert.Len(t, m.Rows, 1)
}

func TestAggregations_DefaultsToAvg(t *testing.T) {
	panel := spec.Panel{Transform: TimeseriesAggregations}
	m, err := aggregations{engine: stats.Default}.Apply([]rawdata.Result{
		series("cpu", rawdata.Point(1, 1), rawdata.NullPoint(2), rawdata.Point(3, 3)),
	}, panel)
	require.NoError(t, err)

	assert.Equal(t, []string{"Metric", "Avg"}, texts(m.Columns))
	assert.Equal(t, table.Row{str("cpu"), num(2)}, m.Rows[0])
	assert.Empty(t, panel.Columns)
}

func TestAggregations_SelectedStats(t *testing.T) {
	panel := spec.Panel{Columns: []spec.ColumnSelector{
		{Text: "Max", Value: "max"},
		{Text: "Count", Value: "count"},
		{Text: "Bogus", Value: "p99"},
	}}
	m, err := aggregations{engine: stats.Default}.Apply([]rawdata.Result{
		series("cpu", rawdata.Point(4, 1), rawdata.Point(9, 2)),
		series("idle"),
	}, panel)
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, []string{"Metric", "Max", "Count", "Bogus"}, texts(m.Columns))
	assert.Equal(t, table.Row{str("cpu"), num(9), num(2), {}}, m.Rows[0])
	assert.True(t, m.Rows[1][1].IsUndefined(), "no values means no max")
	assert.Equal(t, num(0), m.Rows[1][2])
}

func TestAggregations_Columns(t *testing.T) {
	cols := aggregations{}.Columns(nil)
	assert.Equal(t, []string{"Avg", "Min", "Max", "Total", "Current", "Count"}, texts(cols))
	assert.Equal(t, "current", cols[4].Value)
}

func TestAnnotations(t *testing.T) {
	m, err := annotations{}.Apply(nil, spec.Panel{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Time", "Title", "Text", "Tags"}, texts(m.Columns))
	assert.Empty(t, m.Rows)

	m, err = annotations{}.Apply([]rawdata.Result{
		&rawdata.Annotation{Min: 1500, Title: "deploy", Text: "v2", Tags: []string{"prod", "eu"}},
	}, spec.Panel{})
	require.NoError(t, err)
	require.Len(t, m.Rows, 1)
	assert.Equal(t, table.TimeCell(1500), m.Rows[0][0])
	assert.Equal(t, "deploy", m.Rows[0][1].Text())
	assert.Equal(t, "prod,eu", m.Rows[0][3].Text())
}
