package chat

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attached struct {
	reason    string
	messageID int64
	productID int64
	score     float64
}

// memoryStore is an in-memory ConversationStore.
type memoryStore struct {
	failOn        string
	conversations map[string]*model.Conversation
	messages      []model.Message
	attached      []attached
	calls         int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{conversations: make(map[string]*model.Conversation)}
}

func (m *memoryStore) fail(op string) error {
	m.calls++
	if m.failOn == op {
		return common.StoreError(op, errors.New("database is locked"))
	}
	return nil
}

func (m *memoryStore) GetOrCreateConversation(_ context.Context, userID int64, sessionID string) (*model.Conversation, error) {
	if err := m.fail("conversation"); err != nil {
		return nil, err
	}
	if conv, ok := m.conversations[sessionID]; ok {
		return conv, nil
	}
	conv := &model.Conversation{ID: int64(len(m.conversations) + 1), UserID: userID, SessionID: sessionID, IsActive: true}
	m.conversations[sessionID] = conv
	return conv, nil
}

func (m *memoryStore) AppendMessage(_ context.Context, msg *model.Message) (int64, error) {
	if err := m.fail("message"); err != nil {
		return 0, err
	}
	msg.ID = int64(len(m.messages) + 1)
	m.messages = append(m.messages, *msg)
	return msg.ID, nil
}

func (m *memoryStore) AttachRecommendation(_ context.Context, messageID, productID int64, reason string, score float64) error {
	if err := m.fail("attach"); err != nil {
		return err
	}
	m.attached = append(m.attached, attached{messageID: messageID, productID: productID, reason: reason, score: score})
	return nil
}

func (m *memoryStore) GetConversationHistory(_ context.Context, conversationID int64, limit int) ([]model.Message, error) {
	if err := m.fail("history"); err != nil {
		return nil, err
	}
	var out []model.Message
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *memoryStore) GetMessageRecommendations(_ context.Context, messageID int64) ([]model.ChatRecommendation, error) {
	if err := m.fail("recommendations"); err != nil {
		return nil, err
	}
	var out []model.ChatRecommendation
	for i, a := range m.attached {
		if a.messageID == messageID {
			out = append(out, model.ChatRecommendation{
				ID:        int64(i + 1),
				MessageID: messageID,
				ProductID: a.productID,
				Reason:    a.reason,
				Score:     a.score,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

type fixedClassifier model.Classification

func (f fixedClassifier) Classify(string) model.Classification {
	return model.Classification(f)
}

func newTestService(store *memoryStore, cls model.Classification, composer *Composer, opts ...Option) *Service {
	opts = append([]Option{WithSessionIDs(func() string { return "generated-session" })}, opts...)
	return NewService(store, fixedClassifier(cls), composer, opts...)
}

func chatRecommendationIDs(recs []model.ChatRecommendation) []int64 {
	ids := make([]int64, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ProductID)
	}
	return ids
}

func TestService_SendRejectsBlankText(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store, classified(model.IntentGreeting), NewComposer(&fakeKnowledge{}, &fakeFinder{}, &fakeRecommender{}, 0))

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.Send(context.Background(), Request{Text: text, SessionID: "s"})
		require.ErrorIs(t, err, common.ErrEmptyInput)
	}
	assert.Zero(t, store.calls, "blank text never reaches the store")
}

func TestService_SendPersistsTurn(t *testing.T) {
	store := newMemoryStore()
	recommender := &fakeRecommender{recs: []model.Recommendation{
		{Product: model.Product{ID: 30}},
		{Product: model.Product{ID: 10}},
		{Product: model.Product{ID: 20}},
	}}
	composer := NewComposer(&fakeKnowledge{}, &fakeFinder{}, recommender, 0)
	svc := newTestService(store, classified(model.IntentRecommendation), composer)

	resp, err := svc.Send(context.Background(), Request{UserID: 5, Text: "  gợi ý cho mình  "})
	require.NoError(t, err)

	assert.Equal(t, "generated-session", resp.SessionID)
	assert.Equal(t, recommendationText, resp.Text)
	assert.Equal(t, model.IntentRecommendation, resp.Intent)
	assert.InDelta(t, 0.8, resp.Confidence, 1e-9)
	assert.Equal(t, []int64{30, 10, 20}, chatRecommendationIDs(resp.Recommendations))

	require.Len(t, store.messages, 2)
	user, bot := store.messages[0], store.messages[1]
	assert.Equal(t, model.SenderUser, user.Sender)
	assert.Equal(t, "gợi ý cho mình", user.Text, "text is trimmed")
	assert.Nil(t, user.Intent)
	assert.Equal(t, model.SenderBot, bot.Sender)
	require.NotNil(t, bot.Intent)
	assert.Equal(t, model.IntentRecommendation, *bot.Intent)
	require.NotNil(t, bot.Confidence)
	assert.InDelta(t, 0.8, *bot.Confidence, 1e-9)
	assert.Equal(t, bot.ID, resp.MessageID)

	assert.Equal(t, []attached{
		{messageID: bot.ID, productID: 30, reason: AttachReason, score: 100},
		{messageID: bot.ID, productID: 10, reason: AttachReason, score: 90},
		{messageID: bot.ID, productID: 20, reason: AttachReason, score: 80},
	}, store.attached)

	require.Len(t, recommender.calls, 1)
	assert.Equal(t, recommendCall{userID: 5, sessionID: "generated-session", limit: DefaultRecommendationLimit}, recommender.calls[0])
}

func TestService_SendReusesSession(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store, classified(model.IntentGreeting), NewComposer(&fakeKnowledge{}, &fakeFinder{}, &fakeRecommender{}, 0))

	first, err := svc.Send(context.Background(), Request{SessionID: "abc", Text: "chào"})
	require.NoError(t, err)
	second, err := svc.Send(context.Background(), Request{SessionID: "abc", Text: "chào lần nữa"})
	require.NoError(t, err)

	assert.Equal(t, "abc", first.SessionID)
	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Len(t, store.messages, 4)
	assert.NotNil(t, second.Recommendations)
	assert.Empty(t, second.Recommendations)
}

func TestService_SendComposeFailureApologizes(t *testing.T) {
	store := newMemoryStore()
	composer := NewComposer(&fakeKnowledge{err: common.ErrStoreUnavailable}, &fakeFinder{}, &fakeRecommender{}, 0)
	svc := newTestService(store, classified(model.IntentOccasion), composer)

	resp, err := svc.Send(context.Background(), Request{SessionID: "s", Text: "hoa sinh nhật"})
	require.NoError(t, err)

	assert.Equal(t, ApologyText, resp.Text)
	assert.Equal(t, model.IntentOccasion, resp.Intent)
	assert.Empty(t, resp.Recommendations)
	assert.Empty(t, store.attached)
	require.Len(t, store.messages, 2)
	assert.Equal(t, ApologyText, store.messages[1].Text)
}

func TestService_SendStoreFailures(t *testing.T) {
	for _, op := range []string{"conversation", "message", "attach", "recommendations"} {
		t.Run(op, func(t *testing.T) {
			store := newMemoryStore()
			store.failOn = op
			recommender := &fakeRecommender{recs: []model.Recommendation{{Product: model.Product{ID: 1}}}}
			svc := newTestService(store, classified(model.IntentRecommendation), NewComposer(&fakeKnowledge{}, &fakeFinder{}, recommender, 0))

			_, err := svc.Send(context.Background(), Request{UserID: 1, SessionID: "s", Text: "gợi ý"})
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrStoreUnavailable)
			assert.Equal(t, sendFailedMessage, common.UserMessage(err, "fallback"))
		})
	}
}

func TestService_History(t *testing.T) {
	store := newMemoryStore()
	recommender := &fakeRecommender{recs: []model.Recommendation{
		{Product: model.Product{ID: 4}},
		{Product: model.Product{ID: 2}},
	}}
	svc := newTestService(store, classified(model.IntentRecommendation),
		NewComposer(&fakeKnowledge{}, &fakeFinder{}, recommender, 0), WithHistoryLimit(3))

	for _, text := range []string{"một", "hai"} {
		_, err := svc.Send(context.Background(), Request{UserID: 9, SessionID: "hist", Text: text})
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background(), 9, "hist")
	require.NoError(t, err)
	require.Len(t, history.Messages, 3, "history is capped")

	assert.Equal(t, model.SenderBot, history.Messages[0].Sender)
	assert.Equal(t, "hai", history.Messages[1].Text)
	assert.Equal(t, model.SenderBot, history.Messages[2].Sender)
	for _, msg := range history.Messages {
		if msg.Sender == model.SenderBot {
			assert.Equal(t, []int64{4, 2}, chatRecommendationIDs(msg.Recommendations))
		} else {
			assert.Empty(t, msg.Recommendations)
		}
	}
}

func TestService_HistoryErrors(t *testing.T) {
	svc := newTestService(newMemoryStore(), classified(model.IntentGreeting), NewComposer(&fakeKnowledge{}, &fakeFinder{}, &fakeRecommender{}, 0))
	_, err := svc.History(context.Background(), 0, "  ")
	require.ErrorIs(t, err, common.ErrEmptyInput)

	store := newMemoryStore()
	store.failOn = "history"
	svc = newTestService(store, classified(model.IntentGreeting), NewComposer(&fakeKnowledge{}, &fakeFinder{}, &fakeRecommender{}, 0))
	_, err = svc.History(context.Background(), 0, "s")
	require.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.Equal(t, historyFailedMessage, common.UserMessage(err, "fallback"))
}

func TestService_HistoryEmptySession(t *testing.T) {
	svc := newTestService(newMemoryStore(), classified(model.IntentGreeting), NewComposer(&fakeKnowledge{}, &fakeFinder{}, &fakeRecommender{}, 0))

	history, err := svc.History(context.Background(), 0, "new")
	require.NoError(t, err)
	assert.NotNil(t, history.Messages)
	assert.Empty(t, history.Messages)
	assert.Positive(t, history.ConversationID)
}
