// Package tui is the terminal front end for the message editor.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/msgboard/internal/editor"
	"github.com/debemdeboas/msgboard/internal/model"
	"github.com/debemdeboas/msgboard/internal/theme"
)

var tuiLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	tuiLogger = l
}

type focus int

const (
	focusList focus = iota
	focusEdit
	focusCompose
)

// doneMsg reports the end of a network-backed handler.
type doneMsg struct {
	op  string
	err error
}

type Model struct {
	ctx    context.Context
	editor *editor.Editor
	theme  theme.Theme

	focus   focus
	cursor  int
	editing model.MessageID

	editInput textinput.Model
	compose   textinput.Model

	status string
	width  int
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Width = 60
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func New(ctx context.Context, ed *editor.Editor, th theme.Theme) Model {
	compose := newInput("Type a message")
	compose.SetValue(ed.Input())

	return Model{
		ctx:       ctx,
		editor:    ed,
		theme:     th,
		editInput: newInput(""),
		compose:   compose,
	}
}

// Run starts the program and blocks until the user quits. Requests still in
// flight are cancelled on return.
func Run(ctx context.Context, ed *editor.Editor, th theme.Theme, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(ctx, ed, th), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return m.run("load", m.editor.Load)
}

func (m Model) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return doneMsg{op: op, err: fn(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case doneMsg:
		return m.handleDone(msg), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.focus {
		case focusEdit:
			return m.handleEditKeys(msg)
		case focusCompose:
			return m.handleComposeKeys(msg)
		default:
			return m.handleListKeys(msg)
		}
	}

	return m, nil
}

func (m Model) handleDone(msg doneMsg) Model {
	switch {
	case msg.err == nil:
		m.status = ""
	case errors.Is(msg.err, editor.ErrEmptyMessage):
		// shown inline through the editor's error flag
	default:
		tuiLogger.Error().Err(msg.err).Str("op", msg.op).Msg("Request failed")
		m.status = fmt.Sprintf("%s failed: %v", msg.op, msg.err)
	}

	if msg.op == "submit" {
		m.compose.SetValue(m.editor.Input())
	}
	m.clampCursor()
	return m
}

func (m *Model) clampCursor() {
	n := len(m.editor.Messages())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected returns the message under the cursor.
func (m Model) selected() (model.Message, bool) {
	messages := m.editor.Messages()
	if m.cursor < 0 || m.cursor >= len(messages) {
		return model.Message{}, false
	}
	return messages[m.cursor], true
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.editor.Messages())-1 {
			m.cursor++
		}

	case "K", "shift+up":
		if sel, ok := m.selected(); ok && m.editor.MoveUp(sel.ID) {
			m.cursor--
		}

	case "J", "shift+down":
		if sel, ok := m.selected(); ok && m.editor.MoveDown(sel.ID) {
			m.cursor++
		}

	case "d", "x":
		if sel, ok := m.selected(); ok {
			id := sel.ID
			return m, m.run("delete", func(ctx context.Context) error {
				return m.editor.Delete(ctx, id)
			})
		}

	case "e", "enter":
		if sel, ok := m.selected(); ok {
			m.focus = focusEdit
			m.editing = sel.ID
			m.editInput.SetValue(m.editor.DisplayContent(sel.ID))
			m.editInput.CursorEnd()
			return m, m.editInput.Focus()
		}

	case "s":
		if sel, ok := m.selected(); ok && m.editor.CanSave(sel.ID) {
			return m, m.save(sel.ID)
		}

	case "r":
		return m, m.run("load", m.editor.Load)

	case "n", "tab":
		m.focus = focusCompose
		return m, m.compose.Focus()
	}

	return m, nil
}

func (m Model) save(id model.MessageID) tea.Cmd {
	return m.run("update", func(ctx context.Context) error {
		return m.editor.Update(ctx, id)
	})
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusList
		m.editInput.Blur()
		return m, nil

	case "enter":
		if !m.editor.CanSave(m.editing) {
			return m, nil
		}
		m.focus = focusList
		m.editInput.Blur()
		return m, m.save(m.editing)
	}

	before := m.editInput.Value()
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	if after := m.editInput.Value(); after != before {
		if err := m.editor.Edit(m.editing, after); err != nil {
			m.status = fmt.Sprintf("edit failed: %v", err)
		}
	}
	return m, cmd
}

func (m Model) handleComposeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.focus = focusList
		m.compose.Blur()
		return m, nil

	case "enter":
		return m, m.run("submit", m.editor.Submit)
	}

	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	m.editor.SetInput(m.compose.Value())
	return m, cmd
}
