package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrlogo/internal/generator"
	"github.com/cristianadrielbraun/qrlogo/internal/handlers"
	"github.com/cristianadrielbraun/qrlogo/internal/logger"
)

func serveCmd(configPath *string) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the QR code form over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			gin.SetMode(cfg.Server.Mode)
			r := gin.New()
			r.Use(logger.GinLogger(logger.New("http")))
			r.Use(gin.Recovery())

			gen := generator.New(logger.New("generator"), cfg.Verify.Enabled)
			h, err := handlers.New(gen, cfg, logger.New("handlers"))
			if err != nil {
				return err
			}
			h.Register(r)

			log := logger.New("main")
			log.Infof("qrlogo listening on %s", cfg.Addr())
			return r.Run(cfg.Addr())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on (overrides config and PORT)")
	return cmd
}
