package spec

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// ColumnSelector picks a column for transformers that let the user choose:
// Text is the output label, Value the lookup key (a stat name or a
// flattened document path).
type ColumnSelector struct {
	Text  string `yaml:"text" json:"text"`
	Value string `yaml:"value" json:"value"`
}

// StylePattern relabels columns whose text matches Pattern.
type StylePattern struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Alias   string `yaml:"alias" json:"alias"`
}

type ColumnRef struct {
	Text string `yaml:"text" json:"text"`
}

type Filter struct {
	Column ColumnRef `yaml:"column" json:"column"`
	Query  string    `yaml:"query" json:"query"`
}

// Panel is the display configuration handed to a transform.
type Panel struct {
	Transform string           `yaml:"transform" json:"transform"`
	Columns   []ColumnSelector `yaml:"columns" json:"columns,omitempty"`
	Styles    []StylePattern   `yaml:"styles" json:"styles,omitempty"`
	Filter    Filter           `yaml:"filter" json:"filter"`
	Search    *bool            `yaml:"search" json:"search,omitempty"` // nil = enabled
}

// Filtering reports whether the merge transformer should filter rows.
func (p Panel) Filtering() bool {
	if p.Search != nil && !*p.Search {
		return false
	}
	return p.Filter.Column.Text != "" && p.Filter.Query != ""
}

type SinkConfigs struct {
	Kafka  yaml.Node `yaml:"kafka"`
	Stdout yaml.Node `yaml:"stdout"`
}

// ClientSpec selects where the transform runs.
type ClientSpec struct {
	Type      string `yaml:"type"`    // "inproc" (default) or "grpc"
	Address   string `yaml:"address"` // e.g. "localhost:7070"
	TimeoutMS int    `yaml:"timeout_ms"`
}

// File is a transform request: which raw results to read, how to shape
// them, and where the table goes.
type File struct {
	SchemaVersion string `yaml:"schema_version"`

	// Data is a JSON file holding an array of raw query results.
	Data string `yaml:"data"`

	Panel  Panel      `yaml:"panel"`
	Client ClientSpec `yaml:"client"`

	Sinks       []string    `yaml:"sinks"`
	SinkConfigs SinkConfigs `yaml:"sink_configs"`
}

// Request is the wire body of a transform call: the panel plus the raw
// results as a JSON array.
type Request struct {
	Panel Panel           `json:"panel"`
	Data  json.RawMessage `json:"data"`
}
