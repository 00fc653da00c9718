package config

import (
	"testing"

	"github.com/caarlos0/env/v6"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T) Config {
	t.Helper()
	var cfg Config
	require.NoError(t, env.Parse(&cfg))
	if cfg.ContextWindow <= 0 || cfg.ContextWindow > 100 {
		cfg.ContextWindow = 20
	}
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := parse(t)

	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, "llama2:7b", cfg.DefaultChatModel)
	require.Equal(t, "phi4-reasoning:14b", cfg.DefaultReasonModel)
	require.Equal(t, 20, cfg.ContextWindow)
	require.True(t, cfg.UseOllamaCLI)
	require.False(t, cfg.CLIOnly)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("CHAT_MODEL", "mistral:7b")
	t.Setenv("FORCE_OLLAMA_CLI", "true")

	cfg := parse(t)
	require.Equal(t, ":9999", cfg.HTTPAddr)
	require.Equal(t, "mistral:7b", cfg.DefaultChatModel)
	require.True(t, cfg.CLIOnly)
}

func TestWindowClamped(t *testing.T) {
	t.Setenv("CONTEXT_WINDOW", "0")
	require.Equal(t, 20, parse(t).ContextWindow)

	t.Setenv("CONTEXT_WINDOW", "500")
	require.Equal(t, 20, parse(t).ContextWindow)

	t.Setenv("CONTEXT_WINDOW", "5")
	require.Equal(t, 5, parse(t).ContextWindow)
}
