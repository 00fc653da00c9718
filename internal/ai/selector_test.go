package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	name   string
	text   string
	err    error
	panics bool
	calls  int
}

func (f *fakeBackend) Name() string                     { return f.name }
func (f *fakeBackend) Available(_ context.Context) bool { return f.err == nil }
func (f *fakeBackend) Generate(_ context.Context, _ string, _ []Message) (string, error) {
	f.calls++
	if f.panics {
		panic("backend exploded")
	}
	return f.text, f.err
}

func TestDispatchFallsBack(t *testing.T) {
	a := &fakeBackend{name: "a", err: errors.New("down")}
	b := &fakeBackend{name: "b", text: "from b"}
	s := NewSelector(false, a, b)

	out := s.Dispatch(context.Background(), "m", nil)
	require.Equal(t, "from b", out)
	require.Equal(t, 1, a.calls)
	require.Equal(t, 1, b.calls)
}

func TestDispatchPrefersFirst(t *testing.T) {
	a := &fakeBackend{name: "a", text: "from a"}
	b := &fakeBackend{name: "b", text: "from b"}
	s := NewSelector(false, a, b)

	out := s.Dispatch(context.Background(), "m", nil)
	require.Equal(t, "from a", out)
	require.Zero(t, b.calls)
}

func TestDispatchStrictNeverFallsBack(t *testing.T) {
	a := &fakeBackend{name: "ollama-cli", err: errors.New("not installed")}
	b := &fakeBackend{name: "b", text: "from b"}
	s := NewSelector(true, a, b)

	out := s.Dispatch(context.Background(), "m", nil)
	require.Equal(t, StrictUnavailableReply("ollama-cli"), out)
	require.Zero(t, b.calls)
}

func TestDispatchAllExhausted(t *testing.T) {
	a := &fakeBackend{name: "a", err: errors.New("down")}
	b := &fakeBackend{name: "b", err: errors.New("also down")}
	s := NewSelector(false, a, b)

	out := s.Dispatch(context.Background(), "m", nil)
	require.Equal(t, NoBackendReply, out)
}

func TestDispatchNoBackends(t *testing.T) {
	s := NewSelector(false)
	require.Equal(t, NoBackendReply, s.Dispatch(context.Background(), "m", nil))
}

func TestDispatchContainsPanics(t *testing.T) {
	a := &fakeBackend{name: "a", panics: true}
	b := &fakeBackend{name: "b", text: "survived"}
	s := NewSelector(false, a, b)

	out := s.Dispatch(context.Background(), "m", nil)
	require.Equal(t, "survived", out)
}
