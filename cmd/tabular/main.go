package main

import (
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"tabular/internal/logging"
)

type CommandHandler func(command string) bool

var (
	app = kingpin.New("tabular",
		"Turn query results into tables with named transformers.")

	logLevel = app.Flag("log-level", "Log level (debug, info, warn, error).").
			Envar("TABULAR_LOG_LEVEL").Default("warn").String()
	logJSON = app.Flag("log-json", "Log as JSON.").Envar("TABULAR_LOG_JSON").Bool()
	seqURL  = app.Flag("seq-url", "Also ship logs to this Seq server.").
		Envar("TABULAR_LOG_SEQ_URL").String()

	commandHandlers []CommandHandler
)

func main() {
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate)

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	closeLog := logging.Configure(logging.Options{Level: *logLevel, JSON: *logJSON, SeqURL: *seqURL})
	defer closeLog()

	for _, handler := range commandHandlers {
		if handler(command) {
			return
		}
	}
	kingpin.Fatalf("command %q not handled", command)
}
