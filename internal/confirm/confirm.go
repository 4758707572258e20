// Package confirm implements a non-blocking yes/no prompt.
//
// Show inserts an overlay into a Layer and returns at once. The answer is
// delivered later, exactly once, when one of the overlay's two controls is
// activated. Nothing else closes an overlay: there is no timeout and no
// dismissal from outside the controls.
package confirm

// Markers identify overlay parts for rendering and automation.
const (
	MarkerOverlay = "modal-overlay"
	MarkerModal   = "modal"
	MarkerYes     = "btn-yes"
	MarkerNo      = "btn-no"
)

// Presenter shows a prompt and reports the decision through onResult.
type Presenter interface {
	Show(message string, onResult func(confirmed bool)) *Dialog
}

// Button is one actionable control of a dialog.
type Button struct {
	Marker string
	Label  string
}

var buttons = [2]Button{
	{Marker: MarkerYes, Label: "Yes"},
	{Marker: MarkerNo, Label: "No"},
}

// Layer holds the open overlays, oldest first. Overlays are not
// deduplicated; each Show stacks a new one and the newest has focus.
type Layer struct {
	dialogs []*Dialog
}

// NewLayer returns an empty Layer.
func NewLayer() *Layer { return &Layer{} }

// Show inserts a new overlay and returns it without invoking onResult.
func (l *Layer) Show(message string, onResult func(confirmed bool)) *Dialog {
	d := &Dialog{
		layer:    l,
		message:  message,
		onResult: onResult,
		focus:    1, // No
	}
	l.dialogs = append(l.dialogs, d)
	return d
}

// Len returns the number of open overlays.
func (l *Layer) Len() int { return len(l.dialogs) }

// Top returns the newest open overlay, or nil.
func (l *Layer) Top() *Dialog {
	if len(l.dialogs) == 0 {
		return nil
	}
	return l.dialogs[len(l.dialogs)-1]
}

// Dialogs returns the open overlays, oldest first.
func (l *Layer) Dialogs() []*Dialog {
	return append([]*Dialog(nil), l.dialogs...)
}

func (l *Layer) remove(d *Dialog) {
	for i, x := range l.dialogs {
		if x == d {
			l.dialogs = append(l.dialogs[:i], l.dialogs[i+1:]...)
			return
		}
	}
}

// HandleKey routes a key to the newest overlay. It reports whether an
// overlay was open; when true the key must not reach anything underneath.
func (l *Layer) HandleKey(key string) bool {
	d := l.Top()
	if d == nil {
		return false
	}
	switch key {
	case "y", "Y":
		d.Activate(MarkerYes)
	case "n", "N":
		d.Activate(MarkerNo)
	case "left", "h", "shift+tab":
		d.focus = (d.focus + len(buttons) - 1) % len(buttons)
	case "right", "l", "tab":
		d.focus = (d.focus + 1) % len(buttons)
	case "enter":
		d.Activate(buttons[d.focus].Marker)
	}
	return true
}

// Dialog is one open or answered overlay.
type Dialog struct {
	layer    *Layer
	message  string
	onResult func(bool)
	focus    int
	answered bool
}

// Message returns the prompt text.
func (d *Dialog) Message() string { return d.message }

// Buttons returns the dialog's controls in display order.
func (d *Dialog) Buttons() []Button { return buttons[:] }

// Focused returns the control that enter activates.
func (d *Dialog) Focused() Button { return buttons[d.focus] }

// Answered reports whether a control has been activated.
func (d *Dialog) Answered() bool { return d.answered }

// Activate presses the control with marker. The overlay is removed before
// onResult runs. It returns false, doing nothing, once the dialog is
// answered or when marker names no control.
func (d *Dialog) Activate(marker string) bool {
	if d.answered {
		return false
	}
	var confirmed bool
	switch marker {
	case MarkerYes:
		confirmed = true
	case MarkerNo:
		confirmed = false
	default:
		return false
	}
	d.answered = true
	d.layer.remove(d)
	if d.onResult != nil {
		d.onResult(confirmed)
	}
	return true
}
