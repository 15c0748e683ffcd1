package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/tareas/internal/cli"
	"github.com/Veraticus/tareas/internal/intake"
)

func queueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and drain tasks waiting for classification",
		Long: `Tasks captured offline wait in this queue. Draining classifies them
again and moves each one to the folder the classifier picks.`,
	}
	cmd.AddCommand(listQueueCmd())
	cmd.AddCommand(drainQueueCmd())
	return cmd
}

func listQueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List queued tasks in capture order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			pending, err := store.ListPending(ctx)
			if err != nil {
				return fmt.Errorf("failed to list queue: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(pending) == 0 {
				fmt.Fprintln(out, cli.FormatSuccess("La cola está vacía"))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Capturada"),
				cli.TableHeaderStyle.Render("Tarea"),
				cli.TableHeaderStyle.Render("Texto"))
			for _, p := range pending {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.CreatedAt.Format(time.DateTime), p.TaskID, p.RawText)
			}
			return nil
		},
	}
}

func drainQueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drain",
		Short: "Classify queued tasks now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Las tareas restantes siguen en cola")
			ctx, cancel := handler.HandleInterrupts(cmd.Context())
			defer cancel()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			settings := a.settings(ctx)
			switch {
			case !settings.Online:
				fmt.Fprintln(out, cli.FormatWarning("Sin conexión; la cola se procesará más tarde"))
				return nil
			case settings.APIKey == "":
				fmt.Fprintln(out, cli.FormatWarning("No hay credencial de clasificación configurada"))
				return nil
			}

			pending, err := a.store.ListPending(ctx)
			if err != nil {
				return fmt.Errorf("failed to list queue: %w", err)
			}
			if len(pending) == 0 {
				fmt.Fprintln(out, cli.FormatSuccess("La cola está vacía"))
				return nil
			}

			bar := progressbar.NewOptions(len(pending),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Clasificando tareas...[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
			)

			stats, err := a.drainer(intake.WithProgress(func(done, _ int) {
				_ = bar.Set(done)
			})).Drain(ctx, settings)
			_ = bar.Finish()
			fmt.Fprintln(cmd.ErrOrStderr())

			if handler.WasInterrupted() {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Interrumpido: %d procesadas, %d en cola", stats.Processed, stats.Remaining)))
				return nil
			}
			if err != nil {
				return err
			}

			printDrainStats(out, stats)
			return nil
		},
	}
}

func printDrainStats(out io.Writer, stats intake.DrainStats) {
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%d procesadas, %d movidas de carpeta", stats.Processed, stats.Reassigned)))
	if stats.Halted {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("El clasificador falló; %d siguen en cola", stats.Remaining)))
	}
}
