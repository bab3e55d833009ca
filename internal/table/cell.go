package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the value held by a Cell.
type Kind uint8

const (
	Undefined Kind = iota // sparse cell: no value at this position
	Null
	String
	Number
	Time // epoch milliseconds
	Bool
	Tags
)

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case String:
		return "string"
	case Number:
		return "number"
	case Time:
		return "time"
	case Bool:
		return "bool"
	case Tags:
		return "tags"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Cell is one positional value of a Row. The zero value is Undefined.
type Cell struct {
	kind Kind
	str  string
	num  float64
	tags []string
}

func NullCell() Cell             { return Cell{kind: Null} }
func StringCell(s string) Cell   { return Cell{kind: String, str: s} }
func NumberCell(f float64) Cell  { return Cell{kind: Number, num: f} }
func TimeCell(ms int64) Cell     { return Cell{kind: Time, num: float64(ms)} }
func BoolCell(b bool) Cell       { return Cell{kind: Bool, num: boolNum(b)} }
func TagsCell(t []string) Cell   { return Cell{kind: Tags, tags: append([]string(nil), t...)} }
func (c Cell) Kind() Kind        { return c.kind }
func (c Cell) IsUndefined() bool { return c.kind == Undefined }

// Value returns the cell as a plain Go value: nil, string, float64, int64
// (time), bool or []string.
func (c Cell) Value() any {
	switch c.kind {
	case String:
		return c.str
	case Number:
		return c.num
	case Time:
		return int64(c.num)
	case Bool:
		return c.num != 0
	case Tags:
		return append([]string(nil), c.tags...)
	default:
		return nil
	}
}

// Float returns the numeric value for Number and Time cells.
func (c Cell) Float() (float64, bool) {
	if c.kind == Number || c.kind == Time {
		return c.num, true
	}
	return 0, false
}

// Equal reports strict equality. Number and Time compare numerically with
// each other; Undefined and Null are distinct.
func (c Cell) Equal(o Cell) bool {
	if c.numeric() && o.numeric() {
		return c.num == o.num
	}
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case String:
		return c.str == o.str
	case Bool:
		return c.num == o.num
	case Tags:
		// distinct lists are never identical
		return false
	default:
		return true
	}
}

// Text is the string coercion of the cell, as used by row filtering.
func (c Cell) Text() string {
	switch c.kind {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case String:
		return c.str
	case Number, Time:
		return formatNumber(c.num)
	case Bool:
		return strconv.FormatBool(c.num != 0)
	case Tags:
		return strings.Join(c.tags, ",")
	}
	return ""
}

func (c Cell) String() string { return c.Text() }

func (c Cell) numeric() bool { return c.kind == Number || c.kind == Time }

func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case String:
		return json.Marshal(c.str)
	case Number, Time:
		if math.IsNaN(c.num) || math.IsInf(c.num, 0) {
			return []byte("null"), nil
		}
		return []byte(formatNumber(c.num)), nil
	case Bool:
		return json.Marshal(c.num != 0)
	case Tags:
		if c.tags == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(c.tags)
	default:
		return []byte("null"), nil
	}
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*c = Cell{}
		return nil
	}
	switch data[0] {
	case 'n':
		*c = NullCell()
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = StringCell(s)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*c = BoolCell(b)
		return nil
	case '[':
		var tags []string
		if err := json.Unmarshal(data, &tags); err == nil {
			*c = TagsCell(tags)
			return nil
		}
		*c = StringCell(string(data))
		return nil
	case '{':
		*c = StringCell(string(data))
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("table: invalid cell %s: %w", data, err)
	}
	*c = NumberCell(f)
	return nil
}

// CellOf converts a decoded value into a Cell. Containers other than string
// lists become their JSON text.
func CellOf(v any) Cell {
	switch x := v.(type) {
	case nil:
		return NullCell()
	case Cell:
		return x
	case string:
		return StringCell(x)
	case bool:
		return BoolCell(x)
	case float64:
		return NumberCell(x)
	case float32:
		return NumberCell(float64(x))
	case int:
		return NumberCell(float64(x))
	case int32:
		return NumberCell(float64(x))
	case int64:
		return NumberCell(float64(x))
	case uint64:
		return NumberCell(float64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return NumberCell(f)
		}
		return StringCell(x.String())
	case []string:
		return TagsCell(x)
	case []any:
		tags := make([]string, 0, len(x))
		for _, e := range x {
			s, ok := e.(string)
			if !ok {
				return jsonCell(v)
			}
			tags = append(tags, s)
		}
		return TagsCell(tags)
	default:
		return jsonCell(v)
	}
}

func jsonCell(v any) Cell {
	b, err := json.Marshal(v)
	if err != nil {
		return StringCell(fmt.Sprintf("%v", v))
	}
	return StringCell(string(b))
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func boolNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
