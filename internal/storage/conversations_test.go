package storage

import (
	"context"
	"testing"

	"github.com/Veraticus/bloom/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStorage_GetOrCreateConversation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	first, err := store.GetOrCreateConversation(ctx, 0, "session-a")
	require.NoError(t, err)
	assert.Positive(t, first.ID)
	assert.True(t, first.IsActive)
	assert.Zero(t, first.UserID)

	again, err := store.GetOrCreateConversation(ctx, 0, "session-a")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	other, err := store.GetOrCreateConversation(ctx, 12, "session-b")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
	assert.Equal(t, int64(12), other.UserID)

	_, err = store.GetOrCreateConversation(ctx, 0, "")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestSQLiteStorage_ConversationRoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	cat := seedCatalog(t, store, []string{"Sinh nhật"}, []testProduct{
		{name: "Giỏ hoa", category: "Sinh nhật", price: 450000},
		{name: "Bó cúc", category: "Sinh nhật", price: 200000},
	})

	conv, err := store.GetOrCreateConversation(ctx, 1, "session-x")
	require.NoError(t, err)

	userMsg := &model.Message{ConversationID: conv.ID, Sender: model.SenderUser, Text: "tư vấn giúp tôi"}
	userID, err := store.AppendMessage(ctx, userMsg)
	require.NoError(t, err)
	assert.Equal(t, userID, userMsg.ID)

	intent := model.IntentRecommendation
	confidence := 0.8
	botMsg := &model.Message{
		ConversationID: conv.ID,
		Sender:         model.SenderBot,
		Text:           "Dựa trên sở thích của bạn...",
		Intent:         &intent,
		Confidence:     &confidence,
	}
	botID, err := store.AppendMessage(ctx, botMsg)
	require.NoError(t, err)

	require.NoError(t, store.AttachRecommendation(ctx, botID, cat.products["Bó cúc"], "Based on conversation context", 90))
	require.NoError(t, store.AttachRecommendation(ctx, botID, cat.products["Giỏ hoa"], "Based on conversation context", 100))

	recs, err := store.GetMessageRecommendations(ctx, botID)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Giỏ hoa", recs[0].Name)
	assert.InDelta(t, 100, recs[0].Score, 0.0001)
	assert.Equal(t, "/img/1.jpg", recs[0].ImageURL)
	assert.Equal(t, "Bó cúc", recs[1].Name)

	history, err := store.GetConversationHistory(ctx, conv.ID, 20)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.SenderUser, history[0].Sender)
	assert.Nil(t, history[0].Intent)
	assert.Equal(t, model.SenderBot, history[1].Sender)
	require.NotNil(t, history[1].Intent)
	assert.Equal(t, model.IntentRecommendation, *history[1].Intent)
	require.NotNil(t, history[1].Confidence)
	assert.InDelta(t, 0.8, *history[1].Confidence, 0.0001)

	latest, err := store.GetConversationHistory(ctx, conv.ID, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, botID, latest[0].ID)
}

func TestSQLiteStorage_AppendMessageRejectsInvalid(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.AppendMessage(ctx, &model.Message{ConversationID: 1, Sender: "system", Text: "x"})
	assert.ErrorIs(t, err, ErrInvalidMessage)

	assert.ErrorIs(t, store.AttachRecommendation(ctx, 0, 1, "", 1), ErrInvalidID)
}
