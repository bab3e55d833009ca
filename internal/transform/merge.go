package transform

import (
	"fmt"
	"strings"

	"tabular/internal/pattern"
	"tabular/internal/rawdata"
	"tabular/internal/spec"
	"tabular/internal/table"
)

// pair links a merged column to the source column with the same text.
type pair struct {
	merged, source int
}

// tableMerge joins table results on the columns they share.
type tableMerge struct {
	search pattern.Compiler
}

func (tableMerge) Description() string                      { return "Table" }
func (tableMerge) Columns([]rawdata.Result) []table.Column { return nil }

func (t tableMerge) Apply(results []rawdata.Result, panel spec.Panel) (*table.Model, error) {
	sources := make([]*rawdata.Table, 0, len(results))
	for i, r := range results {
		src, ok := r.(*rawdata.Table)
		if !ok {
			return nil, &UnsupportedFormatError{Index: i, Type: r.ResultType()}
		}
		sources = append(sources, src)
	}

	filtering := panel.Filtering()
	filterColumn := -1

	var columns []table.Column
	var rows []table.Row
	for _, src := range sources {
		var pairs []pair
		position := make([]int, len(src.Columns))
		for k, col := range src.Columns {
			if j := columnIndex(columns, col.Text); j >= 0 {
				pairs = append(pairs, pair{merged: j, source: k})
				position[k] = j
				continue
			}
			columns = append(columns, col.Copy())
			position[k] = len(columns) - 1
			if filtering && col.Text == panel.Filter.Column.Text {
				filterColumn = len(columns) - 1
			}
		}

		if len(rows) == 0 {
			for _, r := range src.Rows {
				rows = append(rows, seed(r, position, len(columns)))
			}
		} else {
			rows = join(rows, src.Rows, pairs)
		}
		for i := range rows {
			rows[i] = rows[i].Fit(len(columns))
		}
	}

	if filtering && filterColumn >= 0 {
		var err error
		if rows, err = t.filter(rows, filterColumn, panel.Filter.Query); err != nil {
			return nil, err
		}
	}

	m := table.New()
	m.Columns = append(m.Columns, columns...)
	m.Rows = append(m.Rows, rows...)
	return m, nil
}

// seed places the cells of a source row under their merged columns.
func seed(row table.Row, position []int, width int) table.Row {
	out := make(table.Row, width)
	for k, at := range position {
		out[at] = row.At(k)
	}
	return out
}

// join extends merged rows with the unshared cells of the incoming rows that
// agree with them. With several shared columns the first one (time) is left
// out of the comparison and out of the appended cells.
func join(merged, incoming []table.Row, pairs []pair) []table.Row {
	keys := pairs
	byTag := len(pairs) > 1
	if byTag {
		keys = pairs[1:]
	}

	extended := make([]bool, len(merged))
	for _, row := range incoming {
		for j, target := range merged {
			if extended[j] || !agrees(target, row, keys) {
				continue
			}
			rest := without(row, keys)
			if len(rest) == 0 {
				continue
			}
			if byTag {
				rest = without(row, pairs)
			}
			merged[j] = append(target, rest...)
			extended[j] = true
			break
		}
	}
	return merged
}

func agrees(target, row table.Row, keys []pair) bool {
	for _, k := range keys {
		if !target.At(k.merged).Equal(row.At(k.source)) {
			return false
		}
	}
	return true
}

// without copies row minus the source positions in pairs.
func without(row table.Row, pairs []pair) table.Row {
	out := make(table.Row, 0, len(row))
	for i, c := range row {
		if !hasSource(pairs, i) {
			out = append(out, c)
		}
	}
	return out
}

func hasSource(pairs []pair, i int) bool {
	for _, p := range pairs {
		if p.source == i {
			return true
		}
	}
	return false
}

func columnIndex(columns []table.Column, text string) int {
	for i, c := range columns {
		if c.Text == text {
			return i
		}
	}
	return -1
}

func (t tableMerge) filter(rows []table.Row, column int, query string) ([]table.Row, error) {
	m, err := t.search.Compile(strings.ToLower(query))
	if err != nil {
		return nil, fmt.Errorf("table filter: %w", err)
	}
	kept := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		if m.Test(strings.ToLower(r.At(column).Text())) {
			kept = append(kept, r)
		}
	}
	return kept, nil
}
