package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/model"
	"github.com/Veraticus/bloom/internal/service"
)

// DefaultHistoryLimit is the number of messages History returns.
const DefaultHistoryLimit = 20

// AttachReason is stored with every recommendation attached to a bot message.
const AttachReason = "Based on conversation context"

// Localized messages for persistence failures.
const (
	sendFailedMessage    = "Có lỗi xảy ra khi xử lý tin nhắn"
	historyFailedMessage = "Có lỗi xảy ra khi lấy lịch sử chat"
)

// Classifier decides the intent of a message.
type Classifier interface {
	Classify(message string) model.Classification
}

// Request is one inbound chat message. An empty SessionID starts a new session.
type Request struct {
	SessionID string
	Text      string
	UserID    int64
}

// Response is the persisted bot reply for a Request.
type Response struct {
	SessionID       string                     `json:"session_id"`
	Text            string                     `json:"message"`
	Intent          model.Intent               `json:"intent"`
	Recommendations []model.ChatRecommendation `json:"recommendations"`
	ConversationID  int64                      `json:"conversation_id"`
	MessageID       int64                      `json:"message_id"`
	Confidence      float64                    `json:"confidence"`
}

// History is the tail of a conversation, oldest message first.
type History struct {
	SessionID      string          `json:"session_id"`
	Messages       []model.Message `json:"messages"`
	ConversationID int64           `json:"conversation_id"`
}

// Service runs chat turns: classify, compose, persist.
type Service struct {
	store        service.ConversationStore
	classifier   Classifier
	composer     *Composer
	newSessionID func() string
	historyLimit int
}

// Option configures a Service.
type Option func(*Service)

// WithHistoryLimit sets how many messages History returns.
func WithHistoryLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}

// WithSessionIDs replaces the session id generator.
func WithSessionIDs(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newSessionID = gen
		}
	}
}

// NewService creates a chat service.
func NewService(store service.ConversationStore, classifier Classifier, composer *Composer, opts ...Option) *Service {
	s := &Service{
		store:        store,
		classifier:   classifier,
		composer:     composer,
		newSessionID: uuid.NewString,
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send handles one chat turn and returns the stored reply.
func (s *Service) Send(ctx context.Context, req Request) (*Response, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text", common.ErrEmptyInput)
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = s.newSessionID()
	}

	conv, err := s.store.GetOrCreateConversation(ctx, req.UserID, sessionID)
	if err != nil {
		return nil, common.NewUserError(sendFailedMessage, err)
	}

	if _, err := s.store.AppendMessage(ctx, &model.Message{
		ConversationID: conv.ID,
		Sender:         model.SenderUser,
		Text:           text,
	}); err != nil {
		return nil, common.NewUserError(sendFailedMessage, err)
	}

	cls := s.classifier.Classify(text)
	reply, err := s.composer.Compose(ctx, cls, text, req.UserID, sessionID)
	if err != nil {
		common.LogError(ctx, err, "Failed to compose reply", common.Fields{
			"conversation_id": conv.ID,
			"intent":          string(cls.Intent),
		})
		reply = &Reply{Classification: cls, Text: ApologyText, Recommendations: []model.Recommendation{}}
	}

	intent := reply.Intent
	confidence := reply.Confidence
	messageID, err := s.store.AppendMessage(ctx, &model.Message{
		ConversationID: conv.ID,
		Sender:         model.SenderBot,
		Text:           reply.Text,
		Intent:         &intent,
		Confidence:     &confidence,
	})
	if err != nil {
		return nil, common.NewUserError(sendFailedMessage, err)
	}

	for i, rec := range reply.Recommendations {
		score := float64(100 - 10*i)
		if err := s.store.AttachRecommendation(ctx, messageID, rec.Product.ID, AttachReason, score); err != nil {
			return nil, common.NewUserError(sendFailedMessage, err)
		}
	}

	saved, err := s.store.GetMessageRecommendations(ctx, messageID)
	if err != nil {
		return nil, common.NewUserError(sendFailedMessage, err)
	}
	if saved == nil {
		saved = []model.ChatRecommendation{}
	}

	common.LogDebug(ctx, "Chat turn stored", common.Fields{
		"conversation_id": conv.ID,
		"message_id":      messageID,
		"intent":          string(intent),
		"recommendations": len(saved),
	})

	return &Response{
		SessionID:       sessionID,
		ConversationID:  conv.ID,
		MessageID:       messageID,
		Text:            reply.Text,
		Intent:          intent,
		Confidence:      confidence,
		Recommendations: saved,
	}, nil
}

// History returns the session's recent messages. Bot messages carry the
// recommendations that were attached to them.
func (s *Service) History(ctx context.Context, userID int64, sessionID string) (*History, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id", common.ErrEmptyInput)
	}

	conv, err := s.store.GetOrCreateConversation(ctx, userID, sessionID)
	if err != nil {
		return nil, common.NewUserError(historyFailedMessage, err)
	}

	messages, err := s.store.GetConversationHistory(ctx, conv.ID, s.historyLimit)
	if err != nil {
		return nil, common.NewUserError(historyFailedMessage, err)
	}
	if messages == nil {
		messages = []model.Message{}
	}

	for i := range messages {
		if messages[i].Sender != model.SenderBot {
			continue
		}
		recs, err := s.store.GetMessageRecommendations(ctx, messages[i].ID)
		if err != nil {
			return nil, common.NewUserError(historyFailedMessage, err)
		}
		messages[i].Recommendations = recs
	}

	return &History{
		SessionID:      sessionID,
		ConversationID: conv.ID,
		Messages:       messages,
	}, nil
}
