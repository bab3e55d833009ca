package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadRequestSpec_ResolvesRelativeDataAndSchema(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "request.yml", `schema_version: v1
data: results.json
panel:
  transform: table
  styles:
    - { pattern: "cpu_(.*)", alias: "$1" }
  filter: { column: { text: Host }, query: web }
  search: false
client: { type: grpc, address: "localhost:7070", timeout_ms: 250 }
sinks: [stdout]
sink_configs:
  stdout: { format: json }
`)

	cfg, data, err := LoadRequestSpec(path)
	require.NoError(t, err)
	assert.Equal(t, SupportedSchema, cfg.SchemaVersion)
	assert.Equal(t, filepath.Join(dir, "results.json"), data)
	assert.True(t, filepath.IsAbs(data))

	assert.Equal(t, "table", cfg.Panel.Transform)
	assert.Equal(t, "$1", cfg.Panel.Styles[0].Alias)
	assert.Equal(t, "Host", cfg.Panel.Filter.Column.Text)
	require.NotNil(t, cfg.Panel.Search)
	assert.False(t, cfg.Panel.Filtering())
	assert.Equal(t, "grpc", cfg.Client.Type)
	assert.Equal(t, 250, cfg.Client.TimeoutMS)
	assert.Equal(t, []string{"stdout"}, cfg.Sinks)
}

func TestLoadRequestSpec_DefaultsSchema(t *testing.T) {
	path := write(t, t.TempDir(), "r.yml", "data: /abs/results.json\npanel: { transform: json }\n")
	cfg, data, err := LoadRequestSpec(path)
	require.NoError(t, err)
	assert.Equal(t, SupportedSchema, cfg.SchemaVersion)
	assert.Equal(t, "/abs/results.json", data)
}

func TestLoadRequestSpec_Invalid(t *testing.T) {
	dir := t.TempDir()
	_, _, err := LoadRequestSpec(write(t, dir, "a.yml", "schema_version: v999\npanel: { transform: table }\n"))
	assert.ErrorContains(t, err, "v999")

	_, _, err = LoadRequestSpec(write(t, dir, "b.yml", "data: x.json\n"))
	assert.ErrorContains(t, err, "panel.transform")

	_, _, err = LoadRequestSpec(write(t, dir, "c.yml", "panel: [unclosed\n"))
	assert.Error(t, err)

	_, _, err = LoadRequestSpec(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}
