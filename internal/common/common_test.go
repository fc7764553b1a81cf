package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := StoreError("query popular products", cause)

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "query popular products")
}

func TestUserMessage(t *testing.T) {
	inner := StoreError("save message", errors.New("locked"))
	err := NewUserError("Có lỗi xảy ra", inner)

	assert.Equal(t, "Có lỗi xảy ra", UserMessage(err, "fallback"))
	assert.Equal(t, "fallback", UserMessage(inner, "fallback"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, slog.LevelDebug, "json")
	require.NoError(t, err)

	ctx := WithLogger(context.Background(), logger.With("session_id", "abc"))
	LogDebug(ctx, "composed reply", Fields{"intent": "greeting"})

	out := buf.String()
	assert.Contains(t, out, `"session_id":"abc"`)
	assert.Contains(t, out, `"intent":"greeting"`)

	_, err = NewLogger(&buf, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
