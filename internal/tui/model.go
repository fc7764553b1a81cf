// Package tui implements the interactive chat window.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/bloom/internal/chat"
	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/model"
)

// Rows taken by everything except the conversation viewport.
const chromeHeight = 7

// entry is one rendered chat line.
type entry struct {
	at     time.Time
	sender model.SenderType
	text   string
	recs   []model.ChatRecommendation
}

// Model holds the chat window state.
type Model struct {
	ctx       context.Context
	service   ChatService
	lastError error
	theme     Theme
	keymap    KeyMap
	help      help.Model
	input     textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	sessionID string
	entries   []entry
	userID    int64
	width     int
	height    int
	showHelp  bool
	waiting   bool
	quitting  bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, svc ChatService, cfg Config) Model {
	input := textinput.New()
	input.Placeholder = "Nhập tin nhắn..."
	input.Prompt = "› "
	input.CharLimit = 500
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = cfg.Theme.StatusInfo

	m := Model{
		ctx:       ctx,
		service:   svc,
		theme:     cfg.Theme,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		input:     input,
		spinner:   s,
		viewport:  viewport.New(cfg.Width, max(cfg.Height-chromeHeight, 1)),
		sessionID: cfg.SessionID,
		userID:    cfg.UserID,
		showHelp:  cfg.ShowHelp,
	}
	m.resize(cfg.Width, cfg.Height)
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.sessionID != "" {
		cmds = append(cmds, loadHistory(m.ctx, m.service, m.userID, m.sessionID))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.lastError = msg.err
			common.LogError(m.ctx, msg.err, "Chat turn failed", common.Fields{"session_id": m.sessionID})
			m.appendEntry(entry{at: time.Now(), sender: model.SenderBot, text: common.UserMessage(msg.err, chat.ApologyText)})
			return m, nil
		}
		m.lastError = nil
		m.sessionID = msg.resp.SessionID
		m.appendEntry(entry{at: time.Now(), sender: model.SenderBot, text: msg.resp.Text, recs: msg.resp.Recommendations})
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.entries = m.entries[:0]
		for _, hm := range msg.history.Messages {
			m.entries = append(m.entries, entry{at: hm.CreatedAt, sender: hm.Sender, text: hm.Text, recs: hm.Recommendations})
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Send):
		return m.send()

	case key.Matches(msg, m.keymap.ScrollUp), key.Matches(msg, m.keymap.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.ClearScreen):
		return m, tea.ClearScreen
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send starts a chat turn for the typed message. Only one turn runs at a time.
func (m Model) send() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.waiting {
		return m, nil
	}

	m.input.Reset()
	m.waiting = true
	m.appendEntry(entry{at: time.Now(), sender: model.SenderUser, text: text})

	req := chat.Request{UserID: m.userID, SessionID: m.sessionID, Text: text}
	return m, tea.Batch(sendMessage(m.ctx, m.service, req), m.spinner.Tick)
}

func (m *Model) appendEntry(e entry) {
	m.entries = append(m.entries, e)
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderEntries())
	m.viewport.GotoBottom()
}

// resize adjusts component sizes when the terminal resizes.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeHeight, 1)
	m.input.Width = max(width-6, 10)
	m.help.Width = width
	m.refresh()
}

// SessionID returns the session the window is chatting in.
func (m Model) SessionID() string {
	return m.sessionID
}
