package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"tabular/internal/pipeline"
	"tabular/sink/stdout"
)

var (
	transformCmd     = app.Command("transform", "Run a request file and deliver the table to its sinks.")
	transformRequest = transformCmd.Arg("request", "Request YAML file.").Required().ExistingFile()
	transformPrint   = transformCmd.Flag("print", "Also print the table to stdout.").Bool()

	columnsCmd     = app.Command("columns", "List candidate columns for a request's transformer.")
	columnsRequest = columnsCmd.Arg("request", "Request YAML file.").Required().ExistingFile()
	columnsFormat  = columnsCmd.Flag("format", "Output format").Default("text").Enum("text", "json")
)

func doTransform() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := pipeline.Compile(*transformRequest)
	kingpin.FatalIfError(err, "Compile request")

	m, err := runner.Run(ctx)
	closeErr := runner.Close()
	kingpin.FatalIfError(err, "Transform")
	kingpin.FatalIfError(closeErr, "Close sinks")

	if *transformPrint {
		stdout.Render(os.Stdout, m)
	}
}

func doColumns() {
	runner, err := pipeline.Compile(*columnsRequest)
	kingpin.FatalIfError(err, "Compile request")
	defer runner.Close()

	cols, err := runner.Columns(context.Background())
	kingpin.FatalIfError(err, "Columns")

	if *columnsFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		kingpin.FatalIfError(enc.Encode(cols), "Encode")
		return
	}
	for _, c := range cols {
		os.Stdout.WriteString(c.Text + "\n")
	}
}

func init() {
	commandHandlers = append(commandHandlers, func(command string) bool {
		switch command {
		case transformCmd.FullCommand():
			doTransform()
		case columnsCmd.FullCommand():
			doColumns()
		default:
			return false
		}
		return true
	})
}
