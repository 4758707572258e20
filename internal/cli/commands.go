package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/service"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// inputError turns validation failures into usage errors.
func inputError(err error) error {
	if errors.Is(err, service.ErrEmptyText) || errors.Is(err, service.ErrInvalidDue) {
		return usageError{err}
	}
	return err
}

func (a *app) addCmd() *cobra.Command {
	var due string
	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a todo (text can be multiple words)",
		Example: `  tada add "Buy milk"
  tada add --due 2024-03-05 Pay rent`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			td, err := a.svc.Add(strings.Join(args, " "), due)
			if err != nil {
				return inputError(err)
			}
			a.logger.Info("added", "id", td.ID)
			ui.OK(a.out, "added "+td.Text)
			return nil
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "due date ("+model.DateLayout+")")
	return cmd
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	return tui.Run(cmd.Context(), tui.New(a.store, a.logger))
}

func (a *app) lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "ls",
		Short:       "Open the interactive list",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: map[string]string{annotTUI: "true"},
		RunE:        a.runTUI,
	}
}

func (a *app) listCmd() *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the list",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.listPanel(group)
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func (a *app) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <ref>",
		Short: "Toggle done for a todo (1-based index or id prefix)",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			td, err := a.svc.Toggle(id)
			if err != nil {
				return err
			}
			a.logger.Info("toggled", "id", id, "completed", td.Completed)
			if td.Completed {
				ui.OK(a.out, "done: "+td.Text)
			} else {
				ui.OK(a.out, "pending: "+td.Text)
			}
			return nil
		},
	}
}

func (a *app) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <ref> <text...>",
		Short: "Replace a todo's text",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			td, err := a.svc.Edit(id, strings.Join(args[1:], " "))
			if err != nil {
				return inputError(err)
			}
			a.logger.Info("edited", "id", id)
			ui.OK(a.out, "edited "+td.Text)
			return nil
		},
	}
}

func (a *app) dueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "due <ref> [YYYY-MM-DD]",
		Short: "Set a todo's due date; omit the date to clear it",
		Args:  usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			var due string
			if len(args) == 2 {
				due = args[1]
			}
			td, err := a.svc.SetDue(id, due)
			if err != nil {
				return inputError(err)
			}
			a.logger.Info("due set", "id", id, "due", td.DueDate)
			if td.DueDate == "" {
				ui.OK(a.out, "cleared due date: "+td.Text)
			} else {
				ui.OK(a.out, fmt.Sprintf("due %s: %s", model.FormatDue(td.DueDate), td.Text))
			}
			return nil
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the stored list",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			problems, err := a.store.Check()
			if err != nil {
				return err
			}
			fatal := 0
			for _, p := range problems {
				if p.Fatal {
					fatal++
					ui.Fail(a.out, p.String())
				} else {
					ui.Hint(a.out, "warning: "+p.String())
				}
			}
			if fatal > 0 {
				return fmt.Errorf("stored todos are malformed (%d problems)", fatal)
			}
			todos, err := a.svc.List()
			if err != nil {
				return err
			}
			ui.OK(a.out, fmt.Sprintf("%d todos ok", len(todos)))
			return nil
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: map[string]string{annotNoOpen: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(a.out, "tada "+Version)
		},
	}
}
