package storage

import (
	"context"

	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/model"
)

// SaveUserPreference inserts or replaces the user's preference of pref.Type.
// A zero confidence is stored as 1.0.
func (s *SQLiteStorage) SaveUserPreference(ctx context.Context, pref *model.UserPreference) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePreference(pref); err != nil {
		return err
	}
	if pref.Confidence == 0 {
		pref.Confidence = 1.0
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_preferences (user_id, preference_type, preference_value, confidence)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, preference_type) DO UPDATE SET
			preference_value = excluded.preference_value,
			confidence = excluded.confidence,
			updated_at = CURRENT_TIMESTAMP`,
		pref.UserID, pref.Type, pref.Value, pref.Confidence)
	if err != nil {
		return common.StoreError("save preference", err)
	}
	return nil
}

// GetUserPreferences returns a user's preferences, most recently updated first.
func (s *SQLiteStorage) GetUserPreferences(ctx context.Context, userID int64) ([]model.UserPreference, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT preference_id, user_id, preference_type, preference_value, confidence, updated_at
		FROM user_preferences
		WHERE user_id = ?
		ORDER BY updated_at DESC, preference_id DESC`, userID)
	if err != nil {
		return nil, common.StoreError("query preferences", err)
	}
	defer rows.Close()

	var prefs []model.UserPreference
	for rows.Next() {
		var (
			p       model.UserPreference
			updated timestamp
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Type, &p.Value, &p.Confidence, &updated); err != nil {
			return nil, common.StoreError("scan preference", err)
		}
		p.UpdatedAt = updated.Time
		prefs = append(prefs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StoreError("iterate preferences", err)
	}
	return prefs, nil
}
