package identity_test

import (
	"os"
	"path/filepath"
	"testing"

	"counter-sync/core/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLoadGeneratesOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "identity")
	p := identity.NewProvider(identity.Config{Path: path})

	id, err := p.Load()
	assert.NoError(t, err)

	// Must be a valid UUID and must have been persisted.
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadIsStableAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity")

	first, err := identity.NewProvider(identity.Config{Path: path}).Load()
	assert.NoError(t, err)

	// A fresh provider over the same file must return the same identity.
	second, err := identity.NewProvider(identity.Config{Path: path}).Load()
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadRegeneratesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity")
	assert.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	id, err := identity.NewProvider(identity.Config{Path: path}).Load()
	assert.NoError(t, err)
	assert.NotEmpty(t, id)
}
