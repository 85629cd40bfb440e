package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestSessionLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Sample.xlsx")
	require.NoError(t, os.WriteFile(path, sampleBytes(t), 0o644))

	s := NewSession(*New(path))
	defer s.Close()
	_, ok := s.Poll()
	assert.False(t, ok)
	assert.False(t, s.Pending())

	s.Request(context.Background())
	assert.True(t, s.Pending())
	out, err := s.Wait(waitCtx(t))
	require.NoError(t, err)
	require.NoError(t, out.Err)
	assert.Equal(t, path, out.Source)
	checkSample(t, out.Result)
	assert.False(t, s.Pending())
}

func TestSessionNewestWins(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "Sample.xlsx")
	require.NoError(t, os.WriteFile(good, sampleBytes(t), 0o644))

	s := NewSession(*New(filepath.Join(dir, "missing.xlsx")))
	defer s.Close()
	s.Request(context.Background())
	s.SetSource(good)
	assert.Equal(t, good, s.Source())
	s.Request(context.Background())

	out, err := s.Wait(waitCtx(t))
	require.NoError(t, err)
	require.NoError(t, out.Err, "the first, failing request is superseded")
	assert.Equal(t, good, out.Source)

	time.Sleep(50 * time.Millisecond)
	_, ok := s.Poll()
	assert.False(t, ok, "stale outcomes are not delivered")
}

func TestSessionError(t *testing.T) {
	s := NewSession(*New(filepath.Join(t.TempDir(), "missing.xlsx")))
	defer s.Close()
	s.Request(context.Background())
	out, err := s.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.ErrorIs(t, out.Err, os.ErrNotExist)
	assert.Nil(t, out.Result)
}

func TestSessionPoll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Sample.xlsx")
	require.NoError(t, os.WriteFile(path, sampleBytes(t), 0o644))
	s := NewSession(*New(path))
	defer s.Close()
	s.Request(context.Background())

	var out Outcome
	require.Eventually(t, func() bool {
		var ok bool
		out, ok = s.Poll()
		return ok
	}, 5*time.Second, 10*time.Millisecond)
	assert.NoError(t, out.Err)
}

func TestSessionCloseClearsPending(t *testing.T) {
	s := NewSession(*New(filepath.Join(t.TempDir(), "missing.xlsx")))
	s.Request(context.Background())
	require.True(t, s.Pending())
	s.Close()
	assert.False(t, s.Pending())
}
