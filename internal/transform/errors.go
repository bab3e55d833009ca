package transform

import "fmt"

// UnknownTransformerError is returned for a transform name that is not
// registered.
type UnknownTransformerError struct {
	Name string
}

func (e *UnknownTransformerError) Error() string {
	return fmt.Sprintf("transformer %q not found", e.Name)
}

// UnsupportedFormatError is returned when the table transformer receives a
// result that is not a table.
type UnsupportedFormatError struct {
	Index int    // position of the offending result
	Type  string // its result type
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("query result is not in table format, try using another transform (result %d is %s)",
		e.Index, e.Type)
}
