package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrono-app/chrono/internal/credential"
	"github.com/chrono-app/chrono/internal/model"
)

var (
	loginUser  string
	loginToken string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the gateway credential and identity",
	Long: `Store the gateway bearer token in the system keyring and record the
user identity in the configuration file. Store operations silently no-op
until an identity is established.`,
	Run: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "User identity (required)")
	loginCmd.Flags().StringVarP(&loginToken, "token", "t", "", "Gateway bearer token (required)")
	if err := loginCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("Failed to mark user flag as required: %v", err))
	}
	if err := loginCmd.MarkFlagRequired("token"); err != nil {
		panic(fmt.Sprintf("Failed to mark token flag as required: %v", err))
	}
}

func runLogin(cmd *cobra.Command, args []string) {
	if err := credential.Set(credential.GatewayTokenKey, loginToken); err != nil {
		fatal("storing token: %v", err)
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		fatal("loading config: %v", err)
	}
	cfg.UserID = loginUser
	if err := model.SaveConfig(configPath, cfg); err != nil {
		fatal("saving config: %v", err)
	}

	fmt.Printf("Logged in as %s.\n", loginUser)
}
