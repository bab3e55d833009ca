package table

import "fmt"

// Column describes one output column. Alias is only ever set by the alias
// engine; nil means no style matched.
type Column struct {
	Text  string  `json:"text" yaml:"text"`
	Type  string  `json:"type,omitempty" yaml:"type,omitempty"`
	Value string  `json:"value,omitempty" yaml:"value,omitempty"`
	Alias *string `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// Label is the alias when one is set and non-empty, the text otherwise.
func (c Column) Label() string {
	if c.Alias != nil && *c.Alias != "" {
		return *c.Alias
	}
	return c.Text
}

// Copy returns the column with its own alias storage.
func (c Column) Copy() Column {
	if c.Alias != nil {
		a := *c.Alias
		c.Alias = &a
	}
	return c
}

// Row is positionally aligned with the model's columns.
type Row []Cell

// At returns the cell at i, or Undefined when i is out of range.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// Fit returns a row of exactly n cells, padded with Undefined or truncated.
func (r Row) Fit(n int) Row {
	if len(r) == n {
		return r
	}
	out := make(Row, n)
	copy(out, r)
	return out
}

func (r Row) Clone() Row { return append(Row(nil), r...) }

// Model is the uniform tabular result of a transform.
type Model struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

func New() *Model {
	return &Model{Columns: []Column{}, Rows: []Row{}}
}

func (m *Model) AddColumn(c Column) { m.Columns = append(m.Columns, c) }

// AddRow appends cells as one row fitted to the current column count.
func (m *Model) AddRow(cells ...Cell) {
	m.Rows = append(m.Rows, Row(cells).Fit(len(m.Columns)))
}

// Empty reports whether the model has neither columns nor rows.
func (m *Model) Empty() bool { return len(m.Columns) == 0 && len(m.Rows) == 0 }

// Validate checks that every row has one cell per column.
func (m *Model) Validate() error {
	for i, r := range m.Rows {
		if len(r) != len(m.Columns) {
			return fmt.Errorf("table: row %d has %d cells, want %d", i, len(r), len(m.Columns))
		}
	}
	return nil
}

// Labels returns the display label of every column.
func (m *Model) Labels() []string {
	out := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		out[i] = c.Label()
	}
	return out
}
