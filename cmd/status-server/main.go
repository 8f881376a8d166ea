package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chainsafe/swap-status/pkg/app"
	"github.com/chainsafe/swap-status/pkg/app/statusapi"
	"github.com/chainsafe/swap-status/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadStatusServer(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	var runner app.Runner = statusapi.NewServer(cfg)
	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Status server stopped: %v\n", err)
		os.Exit(1)
	}
}
