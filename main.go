package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrlogo/internal/config"
	"github.com/cristianadrielbraun/qrlogo/internal/logger"
)

var version = "v0.1.0"

func main() {
	var configPath string
	root := &cobra.Command{
		Use:           "qrlogo",
		Short:         "QR code generator with logo overlay",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(generateCmd(&configPath))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qrlogo %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads config and initializes logging, shared by all commands.
func setup(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	return cfg, nil
}
