// Package transform turns raw query results into table models. A Registry
// maps transformer names (timeseries_to_rows, timeseries_to_columns,
// timeseries_aggregations, annotations, table, json) to Transformers; its
// Transform method is the single entry point callers use, and applies
// column aliasing to every result.
package transform
