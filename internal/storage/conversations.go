package storage

import (
	"context"
	"database/sql"
	"errors"
	"slices"

	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/model"
)

// GetOrCreateConversation returns the session's most recent active
// conversation, starting a new one when none exists.
func (s *SQLiteStorage) GetOrCreateConversation(ctx context.Context, userID int64, sessionID string) (*model.Conversation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(sessionID, "sessionID"); err != nil {
		return nil, err
	}

	conv, err := s.activeConversation(ctx, sessionID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, common.StoreError("find conversation", err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_conversations (user_id, session_id) VALUES (?, ?)`,
		nullableID(userID), sessionID)
	if err != nil {
		return nil, common.StoreError("create conversation", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, common.StoreError("conversation id", err)
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT conversation_id, COALESCE(user_id, 0), session_id, is_active, started_at
		FROM chat_conversations WHERE conversation_id = ?`, id)
	conv, err = scanConversation(row)
	if err != nil {
		return nil, common.StoreError("load conversation", err)
	}
	return conv, nil
}

func (s *SQLiteStorage) activeConversation(ctx context.Context, sessionID string) (*model.Conversation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT conversation_id, COALESCE(user_id, 0), session_id, is_active, started_at
		FROM chat_conversations
		WHERE session_id = ? AND is_active = 1
		ORDER BY started_at DESC, conversation_id DESC
		LIMIT 1`, sessionID)
	return scanConversation(row)
}

func scanConversation(row rowScanner) (*model.Conversation, error) {
	var (
		conv    model.Conversation
		started timestamp
	)
	if err := row.Scan(&conv.ID, &conv.UserID, &conv.SessionID, &conv.IsActive, &started); err != nil {
		return nil, err
	}
	conv.StartedAt = started.Time
	return &conv, nil
}

// AppendMessage stores a chat message, sets its ID and returns it.
func (s *SQLiteStorage) AppendMessage(ctx context.Context, msg *model.Message) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateMessage(msg); err != nil {
		return 0, err
	}

	var intent any
	if msg.Intent != nil {
		intent = string(*msg.Intent)
	}
	var confidence any
	if msg.Confidence != nil {
		confidence = *msg.Confidence
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (conversation_id, sender_type, message, intent, confidence)
		VALUES (?, ?, ?, ?, ?)`,
		msg.ConversationID, string(msg.Sender), msg.Text, intent, confidence)
	if err != nil {
		return 0, common.StoreError("insert message", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, common.StoreError("message id", err)
	}
	msg.ID = id
	return id, nil
}

// AttachRecommendation links a product suggestion to a bot message.
func (s *SQLiteStorage) AttachRecommendation(ctx context.Context, messageID, productID int64, reason string, score float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(messageID, "messageID"); err != nil {
		return err
	}
	if err := validateID(productID, "productID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_recommendations (message_id, product_id, reason, score)
		VALUES (?, ?, ?, ?)`, messageID, productID, reason, score)
	if err != nil {
		return common.StoreError("insert chat recommendation", err)
	}
	return nil
}

// GetConversationHistory returns the last limit messages, oldest first.
func (s *SQLiteStorage) GetConversationHistory(ctx context.Context, conversationID int64, limit int) ([]model.Message, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(conversationID, "conversationID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT message_id, conversation_id, sender_type, message, intent, confidence, created_at
		FROM chat_messages
		WHERE conversation_id = ?
		ORDER BY created_at DESC, message_id DESC
		LIMIT ?`, conversationID, sqlLimit(limit))
	if err != nil {
		return nil, common.StoreError("query conversation history", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var (
			msg        model.Message
			sender     string
			intent     sql.NullString
			confidence sql.NullFloat64
			created    timestamp
		)
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &sender, &msg.Text,
			&intent, &confidence, &created); err != nil {
			return nil, common.StoreError("scan message", err)
		}
		msg.Sender = model.SenderType(sender)
		msg.CreatedAt = created.Time
		if intent.Valid {
			in := model.Intent(intent.String)
			msg.Intent = &in
		}
		if confidence.Valid {
			c := confidence.Float64
			msg.Confidence = &c
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StoreError("iterate conversation history", err)
	}

	slices.Reverse(messages)
	return messages, nil
}

// GetMessageRecommendations returns the products attached to a message,
// highest score first.
func (s *SQLiteStorage) GetMessageRecommendations(ctx context.Context, messageID int64) ([]model.ChatRecommendation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(messageID, "messageID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT cr.recommendation_id, cr.message_id, cr.product_id, COALESCE(cr.reason, ''),
			cr.score, cr.created_at, p.name, p.slug, p.price,
			COALESCE((SELECT pi.image_url FROM product_images pi
				WHERE pi.product_id = p.product_id AND pi.is_primary = 1 LIMIT 1), '')
		FROM chat_recommendations cr
		JOIN products p ON cr.product_id = p.product_id
		WHERE cr.message_id = ?
		ORDER BY cr.score DESC, cr.recommendation_id ASC`, messageID)
	if err != nil {
		return nil, common.StoreError("query chat recommendations", err)
	}
	defer rows.Close()

	var recs []model.ChatRecommendation
	for rows.Next() {
		var (
			rec     model.ChatRecommendation
			created timestamp
		)
		if err := rows.Scan(&rec.ID, &rec.MessageID, &rec.ProductID, &rec.Reason, &rec.Score,
			&created, &rec.Name, &rec.Slug, &rec.Price, &rec.ImageURL); err != nil {
			return nil, common.StoreError("scan chat recommendation", err)
		}
		rec.CreatedAt = created.Time
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StoreError("iterate chat recommendations", err)
	}
	return recs, nil
}
