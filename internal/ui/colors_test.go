package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixes(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
		prefix string
	}{
		{"ok", OK, "[OK]"},
		{"error", Error, "[ERROR]"},
		{"warn", Warn, "[WARN]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.format("something happened")

			assert.Contains(t, got, tt.prefix)
			assert.Contains(t, got, "something happened")
		})
	}
}
