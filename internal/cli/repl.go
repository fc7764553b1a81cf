package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/bloom/internal/chat"
	"github.com/Veraticus/bloom/internal/common"
)

// ChatSender sends one chat turn.
type ChatSender interface {
	Send(ctx context.Context, req chat.Request) (*chat.Response, error)
}

// REPL is a line-based chat loop.
type REPL struct {
	out       io.Writer
	reader    *LineReader
	sender    ChatSender
	onSession func(string)
	sessionID string
	userID    int64
}

// NewREPL creates a chat loop reading from in and writing to out. An empty
// sessionID lets the first reply choose one.
func NewREPL(in io.Reader, out io.Writer, sender ChatSender, userID int64, sessionID string) *REPL {
	return &REPL{
		out:       out,
		reader:    NewLineReader(in),
		sender:    sender,
		userID:    userID,
		sessionID: sessionID,
	}
}

// OnSession registers fn to be called whenever the session id is known.
func (r *REPL) OnSession(fn func(string)) {
	r.onSession = fn
}

// SessionID returns the current session id.
func (r *REPL) SessionID() string {
	return r.sessionID
}

// Run reads messages until end of input, /quit, or ctx is canceled.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, FormatTitle("Bloom - tư vấn hoa"))
	fmt.Fprintln(r.out, SubtleStyle.Render("Gõ /quit để thoát."))
	if r.sessionID != "" && r.onSession != nil {
		r.onSession(r.sessionID)
	}

	for {
		fmt.Fprint(r.out, FormatPrompt("Bạn"))

		line, err := r.reader.ReadLine(ctx)
		if errors.Is(err, ErrInputCancelled) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		}

		resp, err := r.sender.Send(ctx, chat.Request{UserID: r.userID, SessionID: r.sessionID, Text: line})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			common.LogError(ctx, err, "Chat turn failed", common.Fields{"session_id": r.sessionID})
			fmt.Fprintln(r.out, FormatError(common.UserMessage(err, chat.ApologyText)))
			continue
		}

		if resp.SessionID != r.sessionID {
			r.sessionID = resp.SessionID
			if r.onSession != nil {
				r.onSession(r.sessionID)
			}
		}

		if err := WriteBotMessage(r.out, resp.Text, resp.Recommendations); err != nil {
			return err
		}
	}
}
