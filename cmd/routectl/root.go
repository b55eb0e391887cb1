package main

import (
	"delivery-route-planner/internal/app"
	"delivery-route-planner/internal/config"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "routectl",
	Short: "Resolve delivery stops and order them into a route",
	Long: `
routectl reads the day's stop list (xlsx or csv), resolves every customer to a
coordinate and prints a greedy nearest-neighbour visiting order starting at the
first row, together with Google Maps and WhatsApp share links.

Configuration is read from the environment and an optional .env file.
`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		log.SetFlags(0)
		if verbose {
			log.SetOutput(&logWriter{writer: os.Stderr})
		} else {
			log.SetOutput(io.Discard)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log service calls to stderr")
}

func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}
