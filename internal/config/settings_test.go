package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/bloom/internal/common"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/florist")

	s, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "/home/florist/.local/share/bloom/bloom.db", s.Database.Path)
	assert.Equal(t, "info", s.Logging.Level)
	assert.Equal(t, "console", s.Logging.Format)
	assert.Equal(t, 8, s.Recommend.Limit)
	assert.Equal(t, 8, s.Recommend.SimilarLimit)
	assert.Equal(t, 4, s.Chat.RecommendationLimit)
	assert.Equal(t, 20, s.Chat.HistoryLimit)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  path: ~/shop.db
logging:
  level: debug
  format: json
recommend:
  limit: 12
chat:
  history_limit: 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	s, err := Load(v)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "shop.db"), s.Database.Path)
	assert.Equal(t, "debug", s.Logging.Level)
	assert.Equal(t, "json", s.Logging.Format)
	assert.Equal(t, 12, s.Recommend.Limit)
	assert.Equal(t, 8, s.Recommend.SimilarLimit, "unset keys keep defaults")
	assert.Equal(t, 50, s.Chat.HistoryLimit)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BLOOM_CHAT_RECOMMENDATION_LIMIT", "6")

	v := viper.New()
	v.SetEnvPrefix("BLOOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 6, s.Chat.RecommendationLimit)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		key   string
		value any
		want  string
	}{
		{"recommend.limit", 0, "limit must be at least 1"},
		{"recommend.similar_limit", 101, "similar_limit must be at most 100"},
		{"chat.recommendation_limit", 21, "recommendation_limit must be at most 20"},
		{"logging.format", "xml", "format must be one of"},
		{"logging.level", "loud", "level must be one of"},
		{"database.path", "", "path is required"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
