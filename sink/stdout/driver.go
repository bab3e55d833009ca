package stdout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/olekukonko/tablewriter"

	"tabular/internal/table"
	"tabular/sink"
)

/* ────────── public YAML config ────────── */
type Config struct {
	Format string    `yaml:"format"` // text (default) | json
	Writer io.Writer `yaml:"-"`      // defaults to os.Stdout
}

/* ────────── driver ────────── */
type driver struct {
	cfg Config
	mu  sync.Mutex // one table at a time on the writer
}

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("stdout-sink: expected Config, got %T", raw)
	}
	switch c.Format {
	case "":
		c.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("stdout-sink: unknown format %q", c.Format)
	}
	if c.Writer == nil {
		c.Writer = os.Stdout
	}
	d.cfg = c
	return nil
}

func (d *driver) Push(m *table.Model) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cfg.Format == "json" {
		enc := json.NewEncoder(d.cfg.Writer)
		return enc.Encode(m)
	}
	Render(d.cfg.Writer, m)
	return nil
}

func (d *driver) Close() error { return nil }

// Render writes m as a text table. Undefined cells print empty.
func Render(w io.Writer, m *table.Model) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(m.Labels())
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)

	for _, r := range m.Rows {
		row := make([]string, len(m.Columns))
		for i := range row {
			if c := r.At(i); !c.IsUndefined() {
				row[i] = c.Text()
			}
		}
		tw.Append(row)
	}
	tw.Render()
}

/* ────────── auto-register ────────── */
func init() {
	sink.Register("stdout", func() sink.Adapter { return &driver{} })
}
