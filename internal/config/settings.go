package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/validation"
)

// DefaultDatabasePath is where the shop database lives unless configured.
const DefaultDatabasePath = "$HOME/.local/share/bloom/bloom.db"

// Settings is the typed view of the application configuration.
type Settings struct {
	Database  DatabaseSettings  `mapstructure:"database"`
	Logging   LoggingSettings   `mapstructure:"logging"`
	Chat      ChatSettings      `mapstructure:"chat"`
	Recommend RecommendSettings `mapstructure:"recommend"`
}

// DatabaseSettings locates the SQLite file.
type DatabaseSettings struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LoggingSettings configures the slog handler.
type LoggingSettings struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// RecommendSettings bounds ranked lists.
type RecommendSettings struct {
	Limit        int `mapstructure:"limit" validate:"min=1,max=100"`
	SimilarLimit int `mapstructure:"similar_limit" validate:"min=1,max=100"`
}

// ChatSettings bounds chat replies and history.
type ChatSettings struct {
	RecommendationLimit int `mapstructure:"recommendation_limit" validate:"min=1,max=20"`
	HistoryLimit        int `mapstructure:"history_limit" validate:"min=1,max=200"`
}

// SetDefaults registers default values for every setting.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("recommend.limit", 8)
	v.SetDefault("recommend.similar_limit", 8)
	v.SetDefault("chat.recommendation_limit", 4)
	v.SetDefault("chat.history_limit", 20)
}

// Load reads settings from v, filling defaults and expanding the database
// path. Values out of range return common.ErrInvalidConfig.
func Load(v *viper.Viper) (Settings, error) {
	SetDefaults(v)

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	s.Database.Path = ExpandPath(s.Database.Path)

	if err := validation.Struct(&s); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	return s, nil
}
