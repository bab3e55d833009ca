package transform

import (
	"tabular/internal/rawdata"
	"tabular/internal/table"
)

var (
	num = table.NumberCell
	str = table.StringCell
)

func series(target string, points ...rawdata.Datapoint) *rawdata.Series {
	return &rawdata.Series{Target: target, Datapoints: points}
}

func rawTable(texts []string, rows ...table.Row) *rawdata.Table {
	cols := make([]table.Column, len(texts))
	for i, t := range texts {
		cols[i] = table.Column{Text: t}
	}
	return &rawdata.Table{Columns: cols, Rows: rows}
}

func texts(cols []table.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Text
	}
	return out
}
