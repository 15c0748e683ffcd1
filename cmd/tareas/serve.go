package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tareas/internal/config"
	"github.com/Veraticus/tareas/internal/llm"
	"github.com/Veraticus/tareas/internal/server"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the classifier over HTTP",
		Long: `Expose POST /api/classify so clients without a provider key can classify
tasks through this machine's credential.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = config.ServerAddress()
			}

			cfg := config.LoadLLMConfig()
			var classifier server.Classifier
			if config.Credential(cfg) != "" {
				c, err := llm.NewClassifier(cfg, slog.Default())
				if err != nil {
					return err
				}
				defer c.Close()
				classifier = c
			} else {
				slog.Warn("no classification credential, every request will fail", "provider", cfg.Provider)
			}

			return server.New(classifier, slog.Default()).Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from server.address)")

	return cmd
}
