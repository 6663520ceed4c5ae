package identity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Config holds configuration for the local client identity.
type Config struct {
	// Path is the file the generated identity is persisted to.
	Path string `mapstructure:"path" default:".counter-sync/identity"`
}

// Provider manages the stable per-installation client identity.
//
// The identity is an opaque UUID generated on first run and persisted to a
// local file. Once written it is immutable for the lifetime of the
// installation; subsequent loads always return the stored value.
type Provider struct {
	path string
}

// NewProvider creates a provider persisting to the configured path.
func NewProvider(cfg Config) *Provider {
	return &Provider{path: cfg.Path}
}

// Load returns the client identity, generating and persisting one if the
// file does not exist yet.
func (p *Provider) Load() (string, error) {
	data, err := os.ReadFile(p.path)
	if err == nil {
		id := strings.TrimSpace(string(data))
		if id != "" {
			return id, nil
		}
		// Empty file: fall through and regenerate.
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read identity file: %w", err)
	}

	id := uuid.NewString()

	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", fmt.Errorf("failed to create identity directory: %w", err)
		}
	}
	if err := os.WriteFile(p.path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("failed to persist identity: %w", err)
	}

	return id, nil
}
