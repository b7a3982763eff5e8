package tui

import (
	"fmt"
	"strings"

	"github.com/debemdeboas/msgboard/internal/config"
)

const (
	listHelp    = "↑/k ↓/j select • K/J reorder • e edit • s save • d delete • r reload • n compose • q quit"
	editHelp    = "enter save • esc back"
	composeHelp = "enter submit • esc back"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Heading.Render("Messages"))
	b.WriteString("\n")

	messages := m.editor.Messages()
	if len(messages) == 0 {
		b.WriteString(m.theme.Help.Render("  No messages yet"))
		b.WriteString("\n")
	}

	for i, msg := range messages {
		prefix := "  "
		if i == m.cursor && m.focus != focusCompose {
			prefix = m.theme.Selected.String()
		}

		content := m.editor.DisplayContent(msg.ID)
		if m.focus == focusEdit && msg.ID == m.editing {
			content = m.editInput.View()
		}

		marker := " "
		if m.editor.HasDraft(msg.ID) {
			marker = m.theme.Pending.String()
		}

		button := m.theme.ButtonInactive.Render("Update")
		if m.editor.CanSave(msg.ID) {
			button = m.theme.ButtonActive.Render("Update")
		}

		line := fmt.Sprintf("%d. %s %s %s", i+1, content, marker, button)
		b.WriteString(prefix)
		b.WriteString(m.theme.Item.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Heading.Render("Submit a new message"))
	b.WriteString("\n")
	b.WriteString(m.compose.View())
	b.WriteString("\n")

	if m.editor.ErrorFlag() {
		b.WriteString(m.theme.Error.Render(config.ErrEmptyMessage))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(m.theme.Status.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.focus {
	case focusEdit:
		b.WriteString(m.theme.Help.Render(editHelp))
	case focusCompose:
		b.WriteString(m.theme.Help.Render(composeHelp))
	default:
		b.WriteString(m.theme.Help.Render(listHelp))
	}
	b.WriteString("\n")

	return b.String()
}
