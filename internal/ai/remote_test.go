package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoteGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"remote reply"}}]}`))
	}))
	defer srv.Close()

	b := NewRemoteBackend(srv.URL, "test-key", "", "chatkiosk")
	out, err := b.Generate(context.Background(), "openrouter/auto", []Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	require.Equal(t, "remote reply", out)
}

func TestRemoteGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	b := NewRemoteBackend(srv.URL, "k", "", "")
	_, err := b.Generate(context.Background(), "m", nil)
	require.Error(t, err)
}

func TestRemoteGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	b := NewRemoteBackend(srv.URL, "k", "", "")
	_, err := b.Generate(context.Background(), "m", nil)
	require.EqualError(t, err, "quota exceeded")
}

func TestRemoteUnconfigured(t *testing.T) {
	b := NewRemoteBackend("", "", "", "")
	require.False(t, b.Available(context.Background()))

	_, err := b.Generate(context.Background(), "m", nil)
	require.Error(t, err)
}
