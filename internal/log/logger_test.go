package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesToFile(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir)
	require.NoError(t, err)

	l.Infof("pass finished: %d created", 2)
	l.Errorf("fetch roster: %s", "endpoint down")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, "plansync.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "pass finished: 2 created")
	assert.Contains(t, string(data), "fetch roster: endpoint down")
}

func TestNewCreatesLogDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	l, err := New(dir)
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	assert.FileExists(t, filepath.Join(dir, "plansync.log"))
}

func TestGlobalInfofWithoutInitIsNoop(t *testing.T) {
	// Must not panic or write anywhere before Init
	Infof("queued %d items", 3)
}
