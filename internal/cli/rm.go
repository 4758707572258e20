package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/confirm"
	"github.com/Makepad-fr/tada/internal/flow"
	"github.com/Makepad-fr/tada/internal/ui"
)

var errNoAnswer = errors.New("no answer; nothing deleted")

func (a *app) rmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <ref>",
		Short: "Delete a todo after confirmation",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			return a.remove(id, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "answer Yes without prompting")
	return cmd
}

// remove drives the same confirm-then-delete flow as the TUI, answering
// the overlay from stdin.
func (a *app) remove(id string, yes bool) error {
	layer := confirm.NewLayer()
	refresh := flow.RefreshFunc(func() {
		if err := a.listPanel(false); err != nil {
			a.logger.Warn("refresh failed", "err", err)
		}
	})
	fl := flow.New(a.store, layer, refresh, a.logger)

	var outcome *flow.Outcome
	fl.Observe(func(o flow.Outcome) { outcome = &o })

	dialog := fl.Delete(id)
	if yes {
		dialog.Activate(confirm.MarkerYes)
	} else if err := a.prompt(layer); err != nil {
		return err
	}

	switch {
	case outcome == nil:
		return errNoAnswer
	case outcome.Err != nil:
		return fmt.Errorf("delete: %w", outcome.Err)
	case !outcome.Confirmed:
		ui.Hint(a.out, "kept")
	case outcome.Removed == 0:
		ui.Hint(a.out, "already gone")
	default:
		ui.OK(a.out, "deleted")
	}
	return nil
}

// prompt reads answers until the open overlay is answered. An empty line
// activates the focused control.
func (a *app) prompt(layer *confirm.Layer) error {
	sc := bufio.NewScanner(a.in)
	for layer.Len() > 0 {
		fmt.Fprintln(a.out, layer.Top().View(confirm.DefaultStyles()))
		fmt.Fprint(a.out, "[y/N] ")
		if !sc.Scan() {
			fmt.Fprintln(a.out)
			if err := sc.Err(); err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			return errNoAnswer
		}
		switch strings.ToLower(strings.TrimSpace(sc.Text())) {
		case "y", "yes":
			layer.HandleKey("y")
		case "n", "no":
			layer.HandleKey("n")
		case "":
			layer.HandleKey("enter")
		default:
			ui.Hint(a.out, "answer y or n")
		}
	}
	return nil
}
