package presenters

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/viewstate"
)

var messageStyle = lipgloss.NewStyle().PaddingLeft(3)

func RenderChat(state viewstate.ChatState) string {
	var response strings.Builder

	title := "Security Assistant"
	if len(state.FindingID) > 0 {
		title = fmt.Sprintf("Security Assistant: %s finding %s", state.Kind.DisplayName(), state.FindingID)
	}
	response.WriteString(RenderTitle(title))

	for _, message := range state.Messages {
		response.WriteString(RenderMessage(message.Role, message.Content))
	}

	if state.Pending {
		response.WriteString(renderInTokenColor("text.muted", " assistant is typing...") + "\n")
	}
	if len(state.Error) > 0 {
		response.WriteString(renderInTokenColor("status.failure", " "+state.Error) + "\n")
	}

	return response.String()
}

// RenderMessage renders a single chat message below a label for its role.
func RenderMessage(role string, content string) string {
	token := "chat.assistant"
	label := "Assistant"
	if role == viewstate.RoleUser {
		token = "chat.user"
		label = "You"
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(ui.TokenColor(token)).Render(" " + label)
	return header + "\n" + messageStyle.Render(strings.TrimSpace(content)) + "\n\n"
}
