package confirm

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Styles controls how an overlay is drawn.
type Styles struct {
	Modal   lipgloss.Style
	Message lipgloss.Style
	Button  lipgloss.Style
	Focused lipgloss.Style
}

// DefaultStyles returns a rounded box with reversed focus.
func DefaultStyles() Styles {
	btn := lipgloss.NewStyle().Padding(0, 2)
	return Styles{
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 3),
		Message: lipgloss.NewStyle().Bold(true),
		Button:  btn,
		Focused: btn.Reverse(true),
	}
}

// View renders the dialog box.
func (d *Dialog) View(st Styles) string {
	var controls []string
	for i, b := range d.Buttons() {
		style := st.Button
		if i == d.focus {
			style = st.Focused
		}
		controls = append(controls, style.Render(b.Label))
	}
	actions := strings.Join(controls, "  ")
	body := lipgloss.JoinVertical(lipgloss.Center, st.Message.Render(d.message), "", actions)
	return st.Modal.Render(body)
}

// View renders the newest overlay centered in a width x height area, or ""
// when no overlay is open.
func (l *Layer) View(st Styles, width, height int) string {
	d := l.Top()
	if d == nil {
		return ""
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, d.View(st))
}

// Overlay draws the newest overlay centered on top of background, which is
// clipped or padded to width x height. With no overlay open it returns
// background unchanged.
func (l *Layer) Overlay(st Styles, background string, width, height int) string {
	d := l.Top()
	if d == nil {
		return background
	}
	bg := strings.Split(background, "\n")
	for len(bg) < height {
		bg = append(bg, "")
	}
	bg = bg[:height]

	fg := strings.Split(d.View(st), "\n")
	fgW := 0
	for _, ln := range fg {
		fgW = max(fgW, ansi.StringWidth(ln))
	}
	fgW = min(fgW, width)
	if len(fg) > height {
		fg = fg[:height]
	}
	x, y := (width-fgW)/2, (height-len(fg))/2

	for i, ln := range fg {
		row := bg[y+i]
		left := ansi.Cut(row, 0, x)
		if n := ansi.StringWidth(left); n < x {
			left += strings.Repeat(" ", x-n)
		}
		if n := ansi.StringWidth(ln); n < fgW {
			ln += strings.Repeat(" ", fgW-n)
		} else if n > fgW {
			ln = ansi.Cut(ln, 0, fgW)
		}
		bg[y+i] = left + ln + ansi.Cut(row, x+fgW, width)
	}
	return strings.Join(bg, "\n")
}
