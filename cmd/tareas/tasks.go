package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tareas/internal/cli"
	"github.com/Veraticus/tareas/internal/common"
	"github.com/Veraticus/tareas/internal/model"
	"github.com/Veraticus/tareas/internal/pathtree"
	"github.com/Veraticus/tareas/internal/service"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"tareas"},
		Short:   "Browse captured tasks",
	}
	cmd.AddCommand(listTasksCmd())
	return cmd
}

func listTasksCmd() *cobra.Command {
	var (
		folderName string
		byPath     bool
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks by folder or by category path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			filter := service.TaskFilter{IncludeCompleted: all, IncludeArchived: all}
			if folderName != "" {
				folder, err := store.GetCategoryByName(ctx, folderName)
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("No existe la carpeta %q.", folderName), err)
				}
				if err != nil {
					return err
				}
				filter.FolderID = folder.ID
			}

			tasks, err := store.ListTasks(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No hay tareas."))
				return nil
			}

			if byPath {
				printByPath(out, tasks)
				return nil
			}
			return printByFolder(cmd, store, tasks)
		},
	}

	cmd.Flags().StringVarP(&folderName, "folder", "f", "", "only tasks in this folder")
	cmd.Flags().BoolVarP(&byPath, "paths", "p", false, "group by detected category path instead of folder")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed and archived tasks")

	return cmd
}

func printByPath(out io.Writer, tasks []model.Task) {
	tree := pathtree.Build(tasks)
	fmt.Fprintln(out, cli.RenderBox("Rutas", cli.RenderTree(tree)))

	for _, group := range tree.Groups() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, cli.BoldStyle.Render(fmt.Sprintf("%s (%d)", group.Name, len(group.Tasks))))
		for _, t := range group.Tasks {
			fmt.Fprintln(out, "  "+cli.RenderTask(t))
		}
	}
}

func printByFolder(cmd *cobra.Command, store service.Storage, tasks []model.Task) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	folders, err := store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list folders: %w", err)
	}

	byFolder := make(map[string][]model.Task)
	for _, t := range tasks {
		byFolder[t.FolderID] = append(byFolder[t.FolderID], t)
	}

	for _, folder := range folders {
		folderTasks := byFolder[folder.ID]
		if len(folderTasks) == 0 {
			continue
		}

		groups, err := store.ListTaskGroups(ctx, folder.ID)
		if err != nil {
			return fmt.Errorf("failed to list groups: %w", err)
		}
		groupNames := make(map[string]string, len(groups))
		for _, g := range groups {
			groupNames[g.ID] = g.Name
		}

		fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s (%d)", folder.Name, len(folderTasks))))
		current := ""
		for _, t := range folderTasks {
			indent := "  "
			if t.TaskGroupID != nil {
				if *t.TaskGroupID != current {
					current = *t.TaskGroupID
					fmt.Fprintf(out, "  %s %s\n", cli.FolderIcon, groupNames[current])
				}
				indent = "    "
			}
			fmt.Fprintln(out, indent+cli.RenderTask(t))
		}
		fmt.Fprintln(out)
	}
	return nil
}
