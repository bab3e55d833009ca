package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/olekukonko/tablewriter"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"tabular/internal/config"
	"tabular/internal/engine"
	"tabular/internal/logging"
	"tabular/internal/transform"
	"tabular/internal/transport"
)

var (
	serveCmd      = app.Command("serve", "Serve the transform registry over gRPC.")
	serveSettings = serveCmd.Flag("config", "Settings YAML file.").Short('c').
			Envar("TABULAR_CONFIG").String()

	transformersCmd    = app.Command("transformers", "List the available transformers.")
	transformersRemote = transformersCmd.Flag("address", "Ask a running server instead.").String()
)

func doServe() {
	cfg, err := config.LoadSettings(*serveSettings)
	kingpin.FatalIfError(err, "Load settings")

	// the settings file decides logging for the server
	closeLog := logging.Configure(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON, SeqURL: cfg.Log.SeqURL})
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := engine.Bootstrap(ctx, cfg, transform.Default())
	kingpin.FatalIfError(err, "Bootstrap")
	kingpin.FatalIfError(e.Run(ctx), "Engine")
}

func doTransformers() {
	infos := transform.Default().Names()
	if *transformersRemote != "" {
		cli, err := transport.Dial(*transformersRemote)
		kingpin.FatalIfError(err, "Dial")
		defer cli.Close()

		infos, err = cli.Transformers(context.Background())
		kingpin.FatalIfError(err, "Transformers")
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Description"})
	table.SetAutoFormatHeaders(false)
	for _, info := range infos {
		table.Append([]string{info.Name, info.Description})
	}
	table.Render()
}

func init() {
	commandHandlers = append(commandHandlers, func(command string) bool {
		switch command {
		case serveCmd.FullCommand():
			doServe()
		case transformersCmd.FullCommand():
			doTransformers()
		default:
			return false
		}
		return true
	})
}
