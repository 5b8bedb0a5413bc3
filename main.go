package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/chamindaf/lion-svc/internal/app"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the configuration file")
	flag.Parse()

	if err := app.Run(*configPath); err != nil {
		slog.Error("service stopped", "error", err)
		os.Exit(1)
	}
}
