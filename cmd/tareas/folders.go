package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tareas/internal/cli"
	"github.com/Veraticus/tareas/internal/common"
)

func foldersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "folders",
		Aliases: []string{"carpetas"},
		Short:   "Manage the folders tasks are filed into",
	}

	cmd.AddCommand(listFoldersCmd())
	cmd.AddCommand(addFolderCmd())
	cmd.AddCommand(reorderFoldersCmd())

	return cmd
}

func listFoldersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List folders in display order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			folders, err := store.ListCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to list folders: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(folders) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No hay carpetas. Usa 'tareas folders add' para crear una."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("#"),
				cli.TableHeaderStyle.Render("Carpeta"),
				cli.TableHeaderStyle.Render("Contexto"),
				cli.TableHeaderStyle.Render("Palabras clave"))

			for i, f := range folders {
				hint := f.ContextHint
				if hint == "" {
					hint = cli.SubtleStyle.Render("(sin contexto)")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, f.Name, hint, strings.Join(f.Keywords, ", "))
			}
			return nil
		},
	}
}

func addFolderCmd() *cobra.Command {
	var (
		contextHint string
		keywords    []string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a folder at the end of the list",
		Long: `Create a folder. The context and keywords are given to the AI classifier
to help it recognize tasks that belong here.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			name := strings.Join(args, " ")
			folder, err := store.CreateCategory(ctx, name, contextHint, keywords)
			if errors.Is(err, common.ErrDuplicateEntry) {
				return common.NewUserError(fmt.Sprintf("Ya existe una carpeta llamada %q.", name), err)
			}
			if err != nil {
				return fmt.Errorf("failed to create folder: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Carpeta %q creada", folder.Name)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&contextHint, "context", "c", "", "what belongs in this folder, for the classifier")
	cmd.Flags().StringSliceVarP(&keywords, "keywords", "k", nil, "comma-separated keywords for the classifier")

	return cmd
}

func reorderFoldersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <name>...",
		Short: "Set the folder display order",
		Long: `List every folder by name in the new order. The first folder receives
tasks that could not be classified.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			ids := make([]string, 0, len(args))
			for _, name := range args {
				folder, err := store.GetCategoryByName(ctx, name)
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("No existe la carpeta %q.", name), err)
				}
				if err != nil {
					return err
				}
				ids = append(ids, folder.ID)
			}

			if err := store.ReorderCategories(ctx, ids); err != nil {
				return fmt.Errorf("failed to reorder folders: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Orden actualizado"))
			return nil
		},
	}
}
