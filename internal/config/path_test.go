package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/florist")
	t.Setenv("BLOOM_DATA", "/srv/bloom")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", "/home/florist"},
		{"~/bloom.db", "/home/florist/bloom.db"},
		{"$BLOOM_DATA/bloom.db", "/srv/bloom/bloom.db"},
		{"/abs/bloom.db", "/abs/bloom.db"},
		{"relative/~/bloom.db", "relative/~/bloom.db"},
		{"~/data//bloom.db", "/home/florist/data/bloom.db"},
		{":memory:", ":memory:"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
