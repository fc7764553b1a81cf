package tui

import "github.com/Veraticus/bloom/internal/chat"

// replyMsg carries the result of one chat turn.
type replyMsg struct {
	err  error
	resp *chat.Response
}

// historyLoadedMsg carries a resumed session's messages.
type historyLoadedMsg struct {
	err     error
	history *chat.History
}
