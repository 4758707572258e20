// Package tui is the interactive todo list.
package tui

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/confirm"
	"github.com/Makepad-fr/tada/internal/flow"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/service"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Store is the persistence the list reads and writes.
type Store interface {
	Load() ([]model.Todo, error)
	Save([]model.Todo) error
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeDue
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model is the bubbletea model. It always works on a pointer so the delete
// flow can refresh it from inside Update.
type Model struct {
	svc    *service.Service
	layer  *confirm.Layer
	flow   *flow.DeleteFlow
	logger *log.Logger
	keys   keyMap

	list  list.Model
	todos []model.Todo
	cmds  []tea.Cmd

	// Inline add / edit / due share one input.
	mode     mode
	ti       textinput.Model
	targetID string
	inputErr string

	status    string
	statusErr bool

	width, height int
}

// New builds the list over st and loads it. A nil logger discards output.
func New(st Store, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Model{
		svc:    service.New(st),
		layer:  confirm.NewLayer(),
		logger: logger,
		keys:   defaultKeys(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.flow = flow.New(st, m.layer, m, logger)
	m.flow.Observe(m.observe)

	t := ui.Current()
	l := list.New(nil, itemDelegate{now: m.svc.Now}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = t.Title
	l.Styles.HelpStyle = t.Muted
	l.Styles.PaginationStyle = t.Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown", "f")
	l.KeyMap.Quit.SetKeys("esc")
	l.AdditionalShortHelpKeys = m.keys.help
	l.AdditionalFullHelpKeys = m.keys.help
	m.list = l

	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200

	m.Refresh()
	m.resize()
	return m
}

// Refresh reloads the list from the store.
func (m *Model) Refresh() {
	todos, err := m.svc.List()
	if err != nil {
		m.logger.Error("load failed", "err", err)
		m.setStatus("load: "+err.Error(), true)
		return
	}
	m.todos = todos
	m.list.Title = ui.Header(todos)
	if cmd := m.list.SetItems(toItems(todos)); cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
	m.logger.Debug("refreshed", "count", len(todos))
}

// Todos returns the list as last loaded.
func (m *Model) Todos() []model.Todo { return m.todos }

// Overlays returns the open confirmation overlays.
func (m *Model) Overlays() *confirm.Layer { return m.layer }

// Status returns the current status line text.
func (m *Model) Status() string { return m.status }

func (m *Model) observe(out flow.Outcome) {
	switch {
	case out.Err != nil:
		m.setStatus("delete failed: "+out.Err.Error(), true)
	case !out.Confirmed:
		m.setStatus("kept", false)
	case out.Removed == 0:
		m.setStatus("already gone", false)
	default:
		m.setStatus("deleted", false)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m *Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if len(m.cmds) > 0 {
		cmd = tea.Batch(append(m.cmds, cmd)...)
		m.cmds = nil
	}
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		if m.layer.HandleKey(msg.String()) {
			return nil
		}
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		if !m.list.SettingFilter() {
			if cmd, ok := m.handleKey(msg); ok {
				return cmd
			}
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

// handleKey runs list-mode bindings; ok is false for keys the list owns.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Add):
		return m.openInput(modeAdd, "", "", "New todo..."), true
	case key.Matches(msg, m.keys.Edit):
		if td, ok := m.selected(); ok {
			return m.openInput(modeEdit, td.ID, td.Text, "Edit todo..."), true
		}
		return nil, true
	case key.Matches(msg, m.keys.Due):
		if td, ok := m.selected(); ok {
			return m.openInput(modeDue, td.ID, td.DueDate, model.DateLayout), true
		}
		return nil, true
	case key.Matches(msg, m.keys.Toggle):
		if td, ok := m.selected(); ok {
			m.apply(m.svc.Toggle(td.ID))
		}
		return nil, true
	case key.Matches(msg, m.keys.Delete):
		if td, ok := m.selected(); ok {
			m.flow.Delete(td.ID)
		}
		return nil, true
	}
	return nil, false
}

func (m *Model) openInput(md mode, id, value, placeholder string) tea.Cmd {
	m.mode = md
	m.targetID = id
	m.inputErr = ""
	m.ti.Placeholder = placeholder
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.resize()
	return m.ti.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeList
	m.targetID = ""
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return nil
	case "enter":
		value := m.ti.Value()
		var (
			td  model.Todo
			err error
		)
		switch m.mode {
		case modeAdd:
			td, err = m.svc.Add(value, "")
		case modeEdit:
			td, err = m.svc.Edit(m.targetID, value)
		case modeDue:
			td, err = m.svc.SetDue(m.targetID, value)
		}
		if errors.Is(err, service.ErrEmptyText) || errors.Is(err, service.ErrInvalidDue) {
			m.inputErr = err.Error()
			return nil
		}
		m.closeInput()
		m.apply(td, err)
		return nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return cmd
}

// apply reports a service result and re-renders from the store.
func (m *Model) apply(td model.Todo, err error) {
	if err != nil {
		m.logger.Error("update failed", "id", td.ID, "err", err)
		m.setStatus(err.Error(), true)
		return
	}
	m.logger.Debug("saved", "id", td.ID)
	m.setStatus("saved", false)
	m.Refresh()
}

func (m *Model) resize() {
	// border + padding
	w, h := m.width-4, m.height-3
	if m.mode != modeList {
		h -= 4
	}
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(w, h)
}

func (m *Model) View() string {
	t := ui.Current()

	var content string
	if len(m.todos) == 0 {
		content = ui.Header(m.todos) + "\n\n" + t.Muted.Render(ui.EmptyState)
	} else {
		content = m.list.View()
	}

	if m.mode != modeList {
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		title := map[mode]string{modeAdd: "Add todo", modeEdit: "Edit todo", modeDue: "Due date (empty clears)"}[m.mode]
		if m.inputErr != "" {
			title += ": " + t.Error.Render(m.inputErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}

	status := t.Muted.Render(m.status)
	if m.statusErr {
		status = t.Error.Render(t.SymFail + " " + m.status)
	}
	view := ui.PanelString([]string{strings.TrimRight(content, "\n"), status})
	if m.layer.Len() > 0 {
		view = m.layer.Overlay(confirm.DefaultStyles(), view, m.width, m.height)
	}
	return view
}

// Run starts the program on the alternate screen and blocks until quit or
// ctx is cancelled.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
