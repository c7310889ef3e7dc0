package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	return path
}

func TestParse(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	path := writeConfig(t, `
address: ":9090"

providers:
  - type: openai
    token: ${OPENAI_API_KEY}
    priority: 10

  - type: anthropic
    token: test-token

tools:
  research:
    type: research
    provider: auto
    timeout: 600
    poll_interval: 2.5
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Address)

	handle, ok := cfg.Providers.Lookup("openai")
	require.True(t, ok)
	require.Equal(t, 10, handle.Priority)

	handle, ok = cfg.Providers.Lookup("anthropic")
	require.True(t, ok)
	require.Equal(t, 100, handle.Priority, "missing priority defaults")

	_, err = cfg.Tool("research")
	require.NoError(t, err)

	_, err = cfg.Tool("missing")
	require.Error(t, err)
}

func TestParseInvalidProvider(t *testing.T) {
	path := writeConfig(t, `
providers:
  - type: cohere
    token: test
`)

	_, err := Parse(path)
	require.ErrorContains(t, err, "invalid provider type")
}

func TestParseInvalidTool(t *testing.T) {
	path := writeConfig(t, `
tools:
  search:
    type: search
`)

	_, err := Parse(path)
	require.ErrorContains(t, err, "invalid tool type")
}

func TestParseUnknownField(t *testing.T) {
	path := writeConfig(t, `
listeners:
  - ":8080"
`)

	_, err := Parse(path)
	require.Error(t, err)
}
