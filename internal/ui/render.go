package ui

import (
	"fmt"
	"regexp"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
)

// EmptyState is shown in place of an empty list.
const EmptyState = "No todos yet. Press a to add one."

const maxTextWidth = 80

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes SGR escape sequences.
func StripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

// Truncate shortens s to max runes, ending in "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 4 {
		return s
	}
	return string(r[:max-3]) + "..."
}

// Line renders one todo: check box, text, and due date with an overdue mark.
func Line(td model.Todo, now time.Time) string {
	t := Current()
	box := t.Muted.Render(t.BoxUnchecked)
	text := Truncate(td.Text, maxTextWidth)
	if td.Completed {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}
	line := box + " " + text
	if td.DueDate != "" {
		due := "Due: " + model.FormatDue(td.DueDate)
		style := t.Muted
		if td.Overdue(now) {
			due += " (overdue)"
			style = t.Overdue
		}
		line += "  " + style.Render(due)
	}
	return line
}

// Lines numbers every todo from 1 so the numbers work as CLI references.
func Lines(todos []model.Todo, now time.Time) []string {
	if len(todos) == 0 {
		return []string{Current().Muted.Render(EmptyState)}
	}
	out := make([]string, 0, len(todos))
	for i, td := range todos {
		out = append(out, numbered(i, td, now))
	}
	return out
}

func numbered(i int, td model.Todo, now time.Time) string {
	return Current().Muted.Render(fmt.Sprintf("%2d.", i+1)) + " " + Line(td, now)
}

// GroupLines splits the list into Pending and Done sections, keeping the
// original numbering.
func GroupLines(todos []model.Todo, now time.Time) []string {
	t := Current()
	var pend, done []string
	for i, td := range todos {
		if td.Completed {
			done = append(done, numbered(i, td, now))
		} else {
			pend = append(pend, numbered(i, td, now))
		}
	}
	none := t.Muted.Render("(none)")
	if len(pend) == 0 {
		pend = []string{none}
	}
	if len(done) == 0 {
		done = []string{none}
	}
	lines := []string{t.Accent.Render("Pending")}
	lines = append(lines, pend...)
	lines = append(lines, "", t.Accent.Render("Done"))
	return append(lines, done...)
}

// Header is the title line with live counts.
func Header(todos []model.Todo) string {
	t := Current()
	d, p := model.Stats(todos)
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(todos),
	)
}

// Summary is the full non-interactive listing: header, progress, items.
func Summary(todos []model.Todo, now time.Time, group bool) []string {
	d, _ := model.Stats(todos)
	lines := []string{
		Header(todos),
		Current().Muted.Render(ProgressBar(d, len(todos), 28)),
		"",
	}
	if group {
		return append(lines, GroupLines(todos, now)...)
	}
	return append(lines, Lines(todos, now)...)
}
