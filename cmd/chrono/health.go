package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrono-app/chrono/internal/gateway"
	"github.com/chrono-app/chrono/internal/model"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the persistence gateway",
	Run:   runHealth,
}

func runHealth(cmd *cobra.Command, args []string) {
	// No stores, no sync: just the client against the health endpoint.
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		fatal("loading config: %v", err)
	}

	gw := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.RoutePrefix, gatewayToken())
	if err := gw.Health(cmd.Context()); err != nil {
		fatal("gateway: %v", err)
	}

	fmt.Println("Gateway is healthy.")
}
