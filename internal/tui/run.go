package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the chat window and blocks until the user quits or ctx is
// canceled. It returns the session id the conversation ended in.
func Run(ctx context.Context, svc ChatService, opts ...Option) (string, error) {
	if svc == nil {
		return "", fmt.Errorf("chat service is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	program := tea.NewProgram(
		newModel(ctx, svc, cfg),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	final, err := program.Run()
	sessionID := cfg.SessionID
	if m, ok := final.(Model); ok {
		sessionID = m.SessionID()
	}

	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return sessionID, nil
		}
		return sessionID, fmt.Errorf("failed to run TUI: %w", err)
	}
	return sessionID, nil
}
