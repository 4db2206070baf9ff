package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("SALDO_TEST_DIR", "/var/data")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"absolute untouched", "/tmp/saldo.db", "/tmp/saldo.db"},
		{"tilde prefix", "~/saldo.db", filepath.Join(home, "saldo.db")},
		{"bare tilde", "~", home},
		{"env var", "$SALDO_TEST_DIR/saldo.db", "/var/data/saldo.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestDefaultDatabasePath(t *testing.T) {
	got := DefaultDatabasePath()
	assert.True(t, filepath.IsAbs(got) || got == "saldo.db")
	assert.Equal(t, "saldo.db", filepath.Base(got))
}
