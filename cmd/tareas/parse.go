package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tareas/internal/cli"
	"github.com/Veraticus/tareas/internal/parser"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Show what would be detected in a task",
		Long: `Run the local detectors on the text and print the suggestions with their
confidence. Nothing is stored and the classifier is not consulted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initParser()
			if err != nil {
				return err
			}

			directives := parser.ExtractDirectives(strings.Join(args, " "))
			result := p.Parse(directives.Text)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle(directives.Text))
			if directives.GroupName != "" {
				fmt.Fprintf(out, "%s grupo: %s\n", cli.FolderIcon, directives.GroupName)
			}
			if directives.Priority != "" {
				fmt.Fprintf(out, "%s prioridad: %s\n", cli.WarningIcon, directives.Priority)
			}
			fmt.Fprintln(out, cli.RenderParseResult(result))
			return nil
		},
	}
}
