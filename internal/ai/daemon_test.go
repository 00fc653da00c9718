package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseReplyShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"chat shape", `{"message":{"content":"hi there"}}`, "hi there"},
		{"response key", `{"response":"flat reply"}`, "flat reply"},
		{"text key", `{"text":"older shape"}`, "older shape"},
		{"content key", `{"content":"oldest shape"}`, "oldest shape"},
		{"priority order", `{"response":"wins","text":"loses"}`, "wins"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ParseReply([]byte(tc.raw)))
		})
	}
}

func TestParseReplyFallsBackToRaw(t *testing.T) {
	raw := `{"unexpected":{"deeply":"nested"}}`
	require.Equal(t, raw, ParseReply([]byte(raw)))

	long := `{"unexpected":"` + strings.Repeat("x", 500) + `"}`
	got := ParseReply([]byte(long))
	require.Len(t, got, 200)
}

func TestDaemonGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		w.Write([]byte(`{"message":{"content":"daemon says hi"},"done":true}`))
	}))
	defer srv.Close()

	b := NewDaemonBackend(srv.URL)
	out, err := b.Generate(context.Background(), "llama2:7b", []Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	require.Equal(t, "daemon says hi", out)
}

func TestDaemonGenerateErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"model not found"}`))
	}))
	defer srv.Close()

	b := NewDaemonBackend(srv.URL)
	_, err := b.Generate(context.Background(), "nope", nil)
	require.EqualError(t, err, "model not found")
}

func TestDaemonGenerateBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	b := NewDaemonBackend(srv.URL)
	_, err := b.Generate(context.Background(), "m", nil)
	require.Error(t, err)
}

func TestDaemonAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[]}`))
	}))
	b := NewDaemonBackend(srv.URL)
	require.True(t, b.Available(context.Background()))

	srv.Close()
	require.False(t, b.Available(context.Background()))
}
