package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/bloom/internal/chat"
)

// sendMessage runs a chat turn off the update loop.
func sendMessage(ctx context.Context, svc ChatService, req chat.Request) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.Send(ctx, req)
		return replyMsg{resp: resp, err: err}
	}
}

// loadHistory fetches the messages of a resumed session.
func loadHistory(ctx context.Context, svc ChatService, userID int64, sessionID string) tea.Cmd {
	return func() tea.Msg {
		history, err := svc.History(ctx, userID, sessionID)
		return historyLoadedMsg{history: history, err: err}
	}
}
