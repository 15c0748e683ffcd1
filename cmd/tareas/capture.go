package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tareas/internal/cli"
	"github.com/Veraticus/tareas/internal/config"
	"github.com/Veraticus/tareas/internal/intake"
	"github.com/Veraticus/tareas/internal/model"
	"github.com/Veraticus/tareas/internal/tui"
)

func captureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capture",
		Short: "Capture tasks interactively with live suggestions",
		Long: `Open the capture screen. Suggestions refresh as you type; accept or
dismiss them before pressing enter to create the task.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			svc := a.intake()
			submit := func(ctx context.Context, raw string, chips []model.Suggestion) (*intake.Result, error) {
				return svc.Create(ctx, raw, a.settings(ctx), intake.WithChips(chips))
			}

			created, err := tui.Run(ctx, tui.Config{
				Parser:   a.parser,
				Submit:   submit,
				Debounce: config.Debounce(),
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%d tareas creadas", created)))
			return nil
		},
	}
}
