// Package alias relabels table columns from configured style patterns.
package alias

import (
	"fmt"

	"tabular/internal/pattern"
	"tabular/internal/spec"
	"tabular/internal/table"
)

// Apply returns a copy of columns where each column whose text matches a
// style gets an alias. Styles are tried in order and only the first match
// per column counts. A style without alias template sets an empty alias.
func Apply(columns []table.Column, styles []spec.StylePattern, compiler pattern.Compiler) ([]table.Column, error) {
	out := make([]table.Column, len(columns))
	for i, c := range columns {
		out[i] = c.Copy()
	}
	if len(styles) == 0 || len(columns) == 0 {
		return out, nil
	}
	if compiler == nil {
		compiler = pattern.Style
	}

	matchers := make([]pattern.Matcher, len(styles))
	for i, s := range styles {
		m, err := compiler.Compile(s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("style %d: %w", i, err)
		}
		matchers[i] = m
	}

	for i := range out {
		for j, m := range matchers {
			if !m.Test(out[i].Text) {
				continue
			}
			var a string
			if styles[j].Alias != "" {
				a = m.Replace(out[i].Text, styles[j].Alias)
			}
			out[i].Alias = &a
			break
		}
	}
	return out, nil
}
