package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 4

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

func execAll(tx *sql.Tx, queries []string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Catalog and orders",
		Up: func(tx *sql.Tx) error {
			return execAll(tx, []string{
				`CREATE TABLE IF NOT EXISTS categories (
					category_id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					slug TEXT UNIQUE NOT NULL,
					description TEXT,
					is_active BOOLEAN DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS products (
					product_id INTEGER PRIMARY KEY AUTOINCREMENT,
					category_id INTEGER NOT NULL,
					name TEXT NOT NULL,
					slug TEXT UNIQUE NOT NULL,
					description TEXT,
					price REAL NOT NULL,
					stock_quantity INTEGER DEFAULT 0,
					is_active BOOLEAN DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (category_id) REFERENCES categories(category_id)
				)`,
				`CREATE INDEX idx_products_category ON products(category_id)`,
				`CREATE INDEX idx_products_active ON products(is_active, stock_quantity)`,
				`CREATE TABLE IF NOT EXISTS product_images (
					image_id INTEGER PRIMARY KEY AUTOINCREMENT,
					product_id INTEGER NOT NULL,
					image_url TEXT NOT NULL,
					is_primary BOOLEAN DEFAULT 0,
					FOREIGN KEY (product_id) REFERENCES products(product_id)
				)`,
				`CREATE INDEX idx_product_images_product ON product_images(product_id, is_primary)`,
				`CREATE TABLE IF NOT EXISTS orders (
					order_id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER NOT NULL,
					status TEXT NOT NULL DEFAULT 'pending',
					order_date DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_orders_user ON orders(user_id, status)`,
				`CREATE TABLE IF NOT EXISTS order_items (
					order_item_id INTEGER PRIMARY KEY AUTOINCREMENT,
					order_id INTEGER NOT NULL,
					product_id INTEGER NOT NULL,
					quantity INTEGER NOT NULL DEFAULT 1,
					price REAL NOT NULL,
					FOREIGN KEY (order_id) REFERENCES orders(order_id),
					FOREIGN KEY (product_id) REFERENCES products(product_id)
				)`,
				`CREATE INDEX idx_order_items_product ON order_items(product_id)`,
				`CREATE INDEX idx_order_items_order ON order_items(order_id)`,
				`CREATE TABLE IF NOT EXISTS reviews (
					review_id INTEGER PRIMARY KEY AUTOINCREMENT,
					product_id INTEGER NOT NULL,
					user_id INTEGER NOT NULL,
					rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
					comment TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (product_id) REFERENCES products(product_id)
				)`,
				`CREATE INDEX idx_reviews_product ON reviews(product_id)`,
			})
		},
	},
	{
		Version:     2,
		Description: "Behavior signals: views, wishlist, cart",
		Up: func(tx *sql.Tx) error {
			return execAll(tx, []string{
				`CREATE TABLE IF NOT EXISTS view_history (
					view_id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER,
					session_id TEXT NOT NULL,
					product_id INTEGER NOT NULL,
					viewed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (product_id) REFERENCES products(product_id)
				)`,
				`CREATE INDEX idx_view_history_user ON view_history(user_id, product_id)`,
				`CREATE INDEX idx_view_history_session ON view_history(session_id, product_id)`,
				`CREATE INDEX idx_view_history_product ON view_history(product_id)`,
				`CREATE TABLE IF NOT EXISTS wishlist (
					wishlist_id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER NOT NULL,
					product_id INTEGER NOT NULL,
					added_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE (user_id, product_id),
					FOREIGN KEY (product_id) REFERENCES products(product_id)
				)`,
				`CREATE INDEX idx_wishlist_product ON wishlist(product_id)`,
				`CREATE TABLE IF NOT EXISTS cart_items (
					cart_item_id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER NOT NULL,
					product_id INTEGER NOT NULL,
					quantity INTEGER NOT NULL DEFAULT 1,
					added_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE (user_id, product_id),
					FOREIGN KEY (product_id) REFERENCES products(product_id)
				)`,
			})
		},
	},
	{
		Version:     3,
		Description: "Chatbot conversations and flower knowledge base",
		Up: func(tx *sql.Tx) error {
			return execAll(tx, []string{
				`CREATE TABLE IF NOT EXISTS flower_knowledge (
					knowledge_id INTEGER PRIMARY KEY AUTOINCREMENT,
					flower_name TEXT NOT NULL,
					meaning TEXT,
					occasion TEXT,
					care_tips TEXT,
					price_range TEXT,
					color_significance TEXT,
					season TEXT,
					keywords TEXT
				)`,
				`CREATE TABLE IF NOT EXISTS chat_conversations (
					conversation_id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER,
					session_id TEXT NOT NULL,
					is_active BOOLEAN DEFAULT 1,
					started_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_chat_conversations_session ON chat_conversations(session_id, is_active)`,
				`CREATE TABLE IF NOT EXISTS chat_messages (
					message_id INTEGER PRIMARY KEY AUTOINCREMENT,
					conversation_id INTEGER NOT NULL,
					sender_type TEXT NOT NULL CHECK (sender_type IN ('user', 'bot')),
					message TEXT NOT NULL,
					intent TEXT,
					confidence REAL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (conversation_id) REFERENCES chat_conversations(conversation_id)
				)`,
				`CREATE INDEX idx_chat_messages_conversation ON chat_messages(conversation_id, created_at)`,
				`CREATE TABLE IF NOT EXISTS chat_recommendations (
					recommendation_id INTEGER PRIMARY KEY AUTOINCREMENT,
					message_id INTEGER NOT NULL,
					product_id INTEGER NOT NULL,
					reason TEXT,
					score REAL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (message_id) REFERENCES chat_messages(message_id),
					FOREIGN KEY (product_id) REFERENCES products(product_id)
				)`,
				`CREATE INDEX idx_chat_recommendations_message ON chat_recommendations(message_id)`,
			})
		},
	},
	{
		Version:     4,
		Description: "User preferences",
		Up: func(tx *sql.Tx) error {
			return execAll(tx, []string{
				`CREATE TABLE IF NOT EXISTS user_preferences (
					preference_id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER NOT NULL,
					preference_type TEXT NOT NULL,
					preference_value TEXT NOT NULL,
					confidence REAL DEFAULT 1.0,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE (user_id, preference_type)
				)`,
			})
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion returns the database's current schema version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
