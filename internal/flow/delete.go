// Package flow gates todo deletion behind a confirmation prompt.
package flow

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/confirm"
	"github.com/Makepad-fr/tada/internal/model"
)

// ConfirmMessage is the prompt shown before every deletion.
const ConfirmMessage = "Are you sure?"

// State of a DeleteFlow.
type State int

const (
	Idle State = iota
	AwaitingConfirmation
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingConfirmation:
		return "awaiting confirmation"
	}
	return "unknown"
}

// Store is the persistence boundary the flow reads and writes.
type Store interface {
	Load() ([]model.Todo, error)
	Save([]model.Todo) error
}

// Refresher redraws the list from the store.
type Refresher interface {
	Refresh()
}

// RefreshFunc adapts a plain function to Refresher.
type RefreshFunc func()

func (f RefreshFunc) Refresh() { f() }

// Outcome describes one answered deletion prompt.
type Outcome struct {
	ID        string
	Confirmed bool
	// Removed is how many records the filter dropped; zero when the id was
	// already gone.
	Removed int
	Err     error
}

type pendingDelete struct {
	id     string
	dialog *confirm.Dialog
}

// DeleteFlow asks for confirmation, then filters the id out of the stored
// list and refreshes the view. Declining touches neither.
type DeleteFlow struct {
	store   Store
	dialogs confirm.Presenter
	view    Refresher
	logger  *log.Logger

	pending []*pendingDelete
	observe func(Outcome)
}

// New wires a flow. A nil logger discards log output.
func New(store Store, dialogs confirm.Presenter, view Refresher, logger *log.Logger) *DeleteFlow {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &DeleteFlow{store: store, dialogs: dialogs, view: view, logger: logger}
}

// Observe registers fn to receive every Outcome.
func (f *DeleteFlow) Observe(fn func(Outcome)) { f.observe = fn }

// State reports whether any prompt is still unanswered.
func (f *DeleteFlow) State() State {
	if len(f.pending) > 0 {
		return AwaitingConfirmation
	}
	return Idle
}

// Delete shows the confirmation prompt for id and returns it. The id is
// fixed now; the list is read only once the prompt is answered.
func (f *DeleteFlow) Delete(id string) *confirm.Dialog {
	p := &pendingDelete{id: id}
	f.pending = append(f.pending, p)
	f.logger.Debug("delete requested", "id", id)
	p.dialog = f.dialogs.Show(ConfirmMessage, func(confirmed bool) {
		f.resolve(p, confirmed)
	})
	return p.dialog
}

func (f *DeleteFlow) resolve(p *pendingDelete, confirmed bool) {
	if !f.release(p) {
		return
	}
	out := Outcome{ID: p.id, Confirmed: confirmed}
	if confirmed {
		out.Removed, out.Err = f.remove(p.id)
	}
	switch {
	case out.Err != nil:
		f.logger.Error("delete failed", "id", p.id, "err", out.Err)
	case confirmed:
		f.logger.Info("deleted", "id", p.id, "removed", out.Removed)
	default:
		f.logger.Debug("delete declined", "id", p.id)
	}
	if f.observe != nil {
		f.observe(out)
	}
}

// release drops p from the pending set, reporting whether it was there.
func (f *DeleteFlow) release(p *pendingDelete) bool {
	for i, x := range f.pending {
		if x == p {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return true
		}
	}
	return false
}

func (f *DeleteFlow) remove(id string) (int, error) {
	todos, err := f.store.Load()
	if err != nil {
		return 0, err
	}
	kept := model.Without(todos, id)
	if err := f.store.Save(kept); err != nil {
		return 0, err
	}
	if f.view != nil {
		f.view.Refresh()
	}
	return len(todos) - len(kept), nil
}
