// Package cli implements the sentinel command-line client.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	server  string
)

// Execute runs the CLI
func Execute(version string) error {
	rootCmd := &cobra.Command{
		Use:     "sentinel",
		Short:   "Smart contract risk audit CLI",
		Long:    `Sentinel submits contract addresses to a Sentinel server and renders the risk assessment.`,
		Version: version,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: sentinel.toml)")
	rootCmd.PersistentFlags().StringVar(&server, "server", "", "server URL (default from config)")

	rootCmd.AddCommand(createAuditCmd())
	rootCmd.AddCommand(createConfigCmd())

	return rootCmd.Execute()
}

// getServer returns the server URL from flag, env, config file, or default
func getServer() string {
	// 1. Command line flag
	if server != "" {
		return server
	}

	// 2. Environment variable
	if env := os.Getenv("SENTINEL_SERVER"); env != "" {
		return env
	}

	// 3. Project config file (TOML)
	if config := loadProjectConfigSilent(); config != nil && config.Server != "" {
		return config.Server
	}

	// 4. Global config (~/.sentinel/config.yaml)
	if global := loadGlobalConfigSilent(); global != nil && global.Server != "" {
		return global.Server
	}

	// 5. Default
	return "http://localhost:8080"
}
