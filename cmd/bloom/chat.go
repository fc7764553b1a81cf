package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/bloom/internal/chat"
	"github.com/Veraticus/bloom/internal/cli"
	"github.com/Veraticus/bloom/internal/service"
	"github.com/Veraticus/bloom/internal/tui"
	"github.com/Veraticus/bloom/internal/validation"
)

type chatInput struct {
	SessionID string `name:"session"`
	Message   string `name:"message"`
	UserID    int64  `name:"user" validate:"gte=0"`
}

type historyInput struct {
	SessionID string `name:"session" validate:"required"`
	UserID    int64  `name:"user" validate:"gte=0"`
}

func chatCmd() *cobra.Command {
	var (
		input  chatInput
		useTUI bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the flower shop assistant",
		Long: `Ask about occasions, flower meanings, care tips, prices and orders.

Without flags a line-based chat starts in the terminal. Use --tui for the
full-screen chat window, or --message to send a single message and exit.
Pass --session to continue an earlier conversation.`,
		Example: `  bloom chat --user 12
  bloom chat --tui --session 4f1c...
  bloom chat --message "hoa tặng sinh nhật mẹ" --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.Struct(&input); err != nil {
				return err
			}

			return withStorage(cmd.Context(), func(store service.Storage) error {
				svc, err := newChatService(store)
				if err != nil {
					return err
				}

				switch {
				case strings.TrimSpace(input.Message) != "":
					return runSingleMessage(cmd, svc, input)
				case useTUI:
					return runChatWindow(cmd, svc, input)
				default:
					return runChatREPL(cmd, svc, input)
				}
			})
		},
	}

	cmd.Flags().Int64Var(&input.UserID, "user", 0, "customer id (0 for anonymous)")
	cmd.Flags().StringVar(&input.SessionID, "session", "", "continue an existing chat session")
	cmd.Flags().StringVarP(&input.Message, "message", "m", "", "send one message and print the reply")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "open the full-screen chat window")

	cmd.AddCommand(chatHistoryCmd())

	return cmd
}

func runSingleMessage(cmd *cobra.Command, svc *chat.Service, input chatInput) error {
	resp, err := svc.Send(cmd.Context(), chat.Request{
		UserID:    input.UserID,
		SessionID: input.SessionID,
		Text:      input.Message,
	})
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), resp)
	}
	if err := cli.WriteBotMessage(cmd.OutOrStdout(), resp.Text, resp.Recommendations); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("session: "+resp.SessionID))
	return err
}

func runChatREPL(cmd *cobra.Command, svc *chat.Service, input chatInput) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx = handler.HandleInterrupts(ctx)

	repl := cli.NewREPL(cmd.InOrStdin(), cmd.OutOrStdout(), svc, input.UserID, input.SessionID)
	repl.OnSession(handler.SetSession)

	if err := repl.Run(ctx); err != nil {
		return err
	}
	if !handler.WasInterrupted() && repl.SessionID() != "" {
		fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("Continue with: bloom chat --session "+repl.SessionID()))
	}
	return nil
}

func runChatWindow(cmd *cobra.Command, svc *chat.Service, input chatInput) error {
	sessionID, err := tui.Run(cmd.Context(), svc,
		tui.WithUser(input.UserID),
		tui.WithSession(input.SessionID),
	)
	if err != nil {
		return err
	}
	if sessionID != "" {
		fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("Continue with: bloom chat --tui --session "+sessionID))
	}
	return nil
}

func chatHistoryCmd() *cobra.Command {
	var input historyInput

	cmd := &cobra.Command{
		Use:   "history <session-id>",
		Short: "Show the messages of a chat session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input.SessionID = strings.TrimSpace(args[0])
			if err := validation.Struct(&input); err != nil {
				return err
			}

			return withStorage(cmd.Context(), func(store service.Storage) error {
				svc, err := newChatService(store)
				if err != nil {
					return err
				}
				history, err := svc.History(cmd.Context(), input.UserID, input.SessionID)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), history)
				}
				return cli.WriteHistory(cmd.OutOrStdout(), history.Messages)
			})
		},
	}

	cmd.Flags().Int64Var(&input.UserID, "user", 0, "customer id owning the session")

	return cmd
}
