package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/bloom/internal/chat"
	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/config"
	"github.com/Veraticus/bloom/internal/model"
)

// setupCLI points the commands at a fresh database and turns on JSON output.
func setupCLI(t *testing.T, seeded bool) {
	t.Helper()

	v := viper.New()
	v.Set("database.path", filepath.Join(t.TempDir(), "bloom.db"))
	loaded, err := config.Load(v)
	require.NoError(t, err)

	prevSettings, prevJSON := settings, jsonOut
	settings, jsonOut = loaded, true
	t.Cleanup(func() {
		settings, jsonOut = prevSettings, prevJSON
	})

	if seeded {
		_, err := execute(t, seedCmd())
		require.NoError(t, err)
	}
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedCommand(t *testing.T) {
	setupCLI(t, false)

	out, err := execute(t, seedCmd())
	require.NoError(t, err)

	var summary struct {
		Categories int `json:"categories"`
		Products   int `json:"products"`
		Knowledge  int `json:"knowledge"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Positive(t, summary.Categories)
	assert.Positive(t, summary.Products)
	assert.Positive(t, summary.Knowledge)

	out, err = execute(t, seedCmd())
	require.NoError(t, err, "a second run is refused without failing")
	assert.Contains(t, out, "already loaded")
}

func TestRecommendCommand(t *testing.T) {
	setupCLI(t, true)

	out, err := execute(t, recommendCmd(), "--session", "visitor-1", "--limit", "5")
	require.NoError(t, err)

	var recs []model.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 5)
	for _, rec := range recs {
		assert.Equal(t, model.SourcePopular, rec.Source, "a new visitor only gets best sellers")
		assert.Positive(t, rec.Product.StockQuantity)
	}
}

func TestRecommendCommand_UsesViews(t *testing.T) {
	setupCLI(t, true)

	_, err := execute(t, trackViewCmd(), "--session", "visitor-2", "--product", "1")
	require.NoError(t, err)

	out, err := execute(t, recommendCmd(), "--session", "visitor-2")
	require.NoError(t, err)

	var recs []model.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.NotEmpty(t, recs)
	assert.Equal(t, model.SourceView, recs[0].Source)
	assert.Len(t, recs, settings.Recommend.Limit)
}

func TestSimilarCommand(t *testing.T) {
	setupCLI(t, true)

	out, err := execute(t, similarCmd(), "1", "--limit", "3")
	require.NoError(t, err)

	var recs []model.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), 3)
	for _, rec := range recs {
		assert.NotEqual(t, int64(1), rec.Product.ID)
		assert.Equal(t, model.SourceSimilar, rec.Source)
	}
}

func TestSimilarCommand_Errors(t *testing.T) {
	setupCLI(t, true)

	tests := []struct {
		name    string
		message string
		args    []string
	}{
		{name: "not a number", args: []string{"abc"}, message: "invalid product id"},
		{name: "zero id", args: []string{"0"}, message: "product-id"},
		{name: "missing product", args: []string{"999"}, message: "Product 999 not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, similarCmd(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, common.UserMessage(err, err.Error()), tt.message)
		})
	}
}

func TestTrackViewCommand_Validation(t *testing.T) {
	setupCLI(t, true)

	tests := []struct {
		name  string
		field string
		args  []string
	}{
		{name: "missing session", args: []string{"--product", "1"}, field: "session"},
		{name: "missing product", args: []string{"--session", "s"}, field: "product"},
		{name: "negative user", args: []string{"--session", "s", "--product", "1", "--user=-1"}, field: "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, trackViewCmd(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestChatCommand_SingleMessageAndHistory(t *testing.T) {
	setupCLI(t, true)

	out, err := execute(t, chatCmd(), "--message", "Xin chào bạn")
	require.NoError(t, err)

	var resp chat.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, model.IntentGreeting, resp.Intent)
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.Text)

	out, err = execute(t, chatCmd(), "history", resp.SessionID)
	require.NoError(t, err)

	var history chat.History
	require.NoError(t, json.Unmarshal([]byte(out), &history))
	require.Len(t, history.Messages, 2)
	assert.Equal(t, model.SenderUser, history.Messages[0].Sender)
	assert.Equal(t, "Xin chào bạn", history.Messages[0].Text)
	assert.Equal(t, model.SenderBot, history.Messages[1].Sender)
}

func TestChatCommand_REPLEndsOnEOF(t *testing.T) {
	setupCLI(t, true)
	jsonOut = false

	_, err := execute(t, chatCmd(), "--user", "3")
	assert.NoError(t, err)
}

func TestKnowledgeCommand(t *testing.T) {
	setupCLI(t, true)

	out, err := execute(t, knowledgeCmd(), "hướng", "dương")
	require.NoError(t, err)

	var entries []model.FlowerKnowledge
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.NotEmpty(t, entries)
	assert.Equal(t, "Hoa Hướng Dương", entries[0].FlowerName)

	_, err = execute(t, knowledgeCmd(), "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query")
}

func TestPreferencesCommands(t *testing.T) {
	setupCLI(t, false)

	_, err := execute(t, preferencesCmd(), "set", "color", "hồng pastel", "--user", "12")
	require.NoError(t, err)
	_, err = execute(t, preferencesCmd(), "set", "color", "trắng", "--user", "12", "--confidence", "0.5")
	require.NoError(t, err)

	out, err := execute(t, preferencesCmd(), "get", "--user", "12")
	require.NoError(t, err)

	var prefs []model.UserPreference
	require.NoError(t, json.Unmarshal([]byte(out), &prefs))
	require.Len(t, prefs, 1, "setting the same type replaces the value")
	assert.Equal(t, "trắng", prefs[0].Value)
	assert.InDelta(t, 0.5, prefs[0].Confidence, 1e-9)

	_, err = execute(t, preferencesCmd(), "set", "color", "đỏ", "--user", "12", "--confidence", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confidence")
}

func TestPurchasesCommand_Empty(t *testing.T) {
	setupCLI(t, true)

	out, err := execute(t, purchasesCmd(), "--user", "5")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)

	_, err = execute(t, purchasesCmd())
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	setupCLI(t, false)

	out, err := execute(t, versionCmd())
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"dev"}`, out)
}
