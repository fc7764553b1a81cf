package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookupInput struct {
	Session string `name:"session" validate:"required"`
	Format  string `name:"format" validate:"oneof=console json"`
	Note    string `validate:"max=3"`
	Limit   int    `name:"limit" validate:"min=1,max=100"`
	User    int64  `name:"user" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	valid := lookupInput{Session: "s", Format: "json", Limit: 8}

	tests := []struct {
		name     string
		mutate   func(*lookupInput)
		wantMsgs []string
	}{
		{name: "valid", mutate: func(*lookupInput) {}},
		{
			name:     "missing session",
			mutate:   func(in *lookupInput) { in.Session = "" },
			wantMsgs: []string{"session is required"},
		},
		{
			name:     "limit too small",
			mutate:   func(in *lookupInput) { in.Limit = 0 },
			wantMsgs: []string{"limit must be at least 1"},
		},
		{
			name:     "limit too large",
			mutate:   func(in *lookupInput) { in.Limit = 101 },
			wantMsgs: []string{"limit must be at most 100"},
		},
		{
			name:     "bad format",
			mutate:   func(in *lookupInput) { in.Format = "xml" },
			wantMsgs: []string{"format must be one of: console json"},
		},
		{
			name:     "untagged name falls back to field",
			mutate:   func(in *lookupInput) { in.Note = "long" },
			wantMsgs: []string{"Note must be at most 3 characters"},
		},
		{
			name: "several failures",
			mutate: func(in *lookupInput) {
				in.User = -1
				in.Limit = 0
			},
			wantMsgs: []string{"limit must be at least 1", "user must be greater than or equal to 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			err := Struct(&in)
			if len(tt.wantMsgs) == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			var verr *Error
			require.True(t, errors.As(err, &verr))
			got := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				got = append(got, f.Message)
			}
			assert.ElementsMatch(t, tt.wantMsgs, got)
		})
	}
}

func TestValidatorIsShared(t *testing.T) {
	assert.Same(t, Validator(), Validator())
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "validation failed", (&Error{}).Error())
	err := &Error{Fields: []FieldError{{Message: "a is required"}, {Message: "b must be at least 1"}}}
	assert.Equal(t, "a is required; b must be at least 1", err.Error())
}
