package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tareas/internal/cli"
	"github.com/Veraticus/tareas/internal/common"
	"github.com/Veraticus/tareas/internal/intake"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [text]",
		Short: "Create a task from natural-language text",
		Long: `Create a task. The folder is chosen by the AI classifier when it is
reachable; offline tasks land in the first folder and are queued.

With no arguments, one task is read per line from standard input.

Directives:
  > Group      put the task in a group of its folder
  high|mid|low trailing priority marker`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			svc := a.intake()
			out := cmd.OutOrStdout()

			if len(args) > 0 {
				return addOne(cmd, a, svc, strings.Join(args, " "))
			}

			reader := cli.NewLineReader(os.Stdin)
			created := 0
			for {
				line, err := reader.ReadLine(ctx)
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return err
				}
				if err := addOne(cmd, a, svc, line); err != nil {
					return err
				}
				created++
			}
			fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d tareas creadas", created)))
			return nil
		},
	}
}

func addOne(cmd *cobra.Command, a *app, svc *intake.Service, raw string) error {
	ctx := cmd.Context()
	res, err := svc.Create(ctx, raw, a.settings(ctx))
	switch {
	case errors.Is(err, common.ErrNoCategories):
		return common.NewUserError("No hay carpetas. Crea una con 'tareas folders add <nombre>'.", err)
	case errors.Is(err, intake.ErrEmptyTask):
		return common.NewUserError(fmt.Sprintf("La tarea %q está vacía.", raw), err)
	case err != nil:
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderTask(*res.Task))

	where := res.Folder.Name
	if res.Group != nil {
		where += " / " + res.Group.Name
	}
	fmt.Fprintf(out, "  %s %s · %s\n", cli.FolderIcon, where, cli.FormatSource(res.Task.Source))
	return nil
}
