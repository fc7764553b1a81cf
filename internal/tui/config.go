package tui

import (
	"context"

	"github.com/Veraticus/bloom/internal/chat"
)

// ChatService runs chat turns and loads history.
type ChatService interface {
	Send(ctx context.Context, req chat.Request) (*chat.Response, error)
	History(ctx context.Context, userID int64, sessionID string) (*chat.History, error)
}

// Config holds TUI configuration.
type Config struct {
	Theme     Theme
	SessionID string
	UserID    int64
	Width     int
	Height    int
	ShowHelp  bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:    Garden,
		Width:    80,
		Height:   24,
		ShowHelp: true,
	}
}

// WithUser chats as a signed-in customer.
func WithUser(userID int64) Option {
	return func(c *Config) {
		c.UserID = userID
	}
}

// WithSession resumes an existing session and loads its history.
func WithSession(sessionID string) Option {
	return func(c *Config) {
		c.SessionID = sessionID
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithHelp toggles the key help footer.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
