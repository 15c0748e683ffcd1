package main

import (
	"fmt"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/tareas/internal/cli"
	"github.com/Veraticus/tareas/internal/config"
	"github.com/Veraticus/tareas/internal/llm"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Drain the queue whenever the network comes back",
		Long: `Stay running, drain the classification queue once at start and again on
every reconnect. Changes to the config file are picked up without a
restart.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			reload := make(chan struct{}, 1)
			if viper.ConfigFileUsed() != "" {
				viper.OnConfigChange(func(e fsnotify.Event) {
					slog.Info("config file changed", "file", e.Name, "op", e.Op.String())
					select {
					case reload <- struct{}{}:
					default:
					}
				})
				viper.WatchConfig()
			}

			out := cmd.OutOrStdout()
			drainer := a.drainer()
			runDrain := func() {
				stats, err := drainer.Drain(ctx, a.settings(ctx))
				if err != nil {
					if ctx.Err() == nil {
						slog.Error("drain failed", "error", err)
					}
					return
				}
				if stats.Processed > 0 || stats.Halted {
					printDrainStats(out, stats)
				}
			}

			fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Vigilando la conexión (modo %s)", a.checker.Mode())))
			runDrain()

			reconnects := a.checker.Watch(ctx)
			for {
				select {
				case <-ctx.Done():
					return nil
				case _, ok := <-reconnects:
					if !ok {
						return nil
					}
					slog.Info("network is back, draining queue")
					runDrain()
				case <-reload:
					if err := a.reloadClassifier(); err != nil {
						slog.Error("failed to reload classifier", "error", err)
						continue
					}
					drainer = a.drainer()
					runDrain()
				}
			}
		},
	}
}

// reloadClassifier rebuilds the classifier from the current configuration.
func (a *app) reloadClassifier() error {
	cfg := config.LoadLLMConfig()

	var classifier *llm.Classifier
	if config.Credential(cfg) != "" {
		c, err := llm.NewClassifier(cfg, slog.Default())
		if err != nil {
			return err
		}
		classifier = c
	}

	if a.classifier != nil {
		_ = a.classifier.Close()
	}
	a.classifier = classifier
	a.llmConfig = cfg
	slog.Info("classifier configuration reloaded", "provider", cfg.Provider, "enabled", classifier != nil)
	return nil
}

