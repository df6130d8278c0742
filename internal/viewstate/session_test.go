package viewstate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginSupersedesPreviousFetch(t *testing.T) {
	var s Session

	tok1, ctx1 := s.Begin(context.Background(), "9001")
	assert.True(t, s.Accept(tok1))
	require.NoError(t, ctx1.Err())

	// Navigating to a new identifier invalidates the old token and cancels
	// its context.
	tok2, ctx2 := s.Begin(context.Background(), "9002")
	assert.False(t, s.Accept(tok1), "stale token must be rejected")
	assert.True(t, s.Accept(tok2))
	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
	require.NoError(t, ctx2.Err())
}

func TestReadoptingSameIdentifierIsANewGeneration(t *testing.T) {
	var s Session

	tok1, _ := s.Begin(context.Background(), "9001")
	tok2, _ := s.Begin(context.Background(), "9001")

	// A refresh of the same identifier is still a new fetch; the earlier
	// response must not clobber the newer one.
	assert.False(t, s.Accept(tok1))
	assert.True(t, s.Accept(tok2))
}

func TestCurrentAndStale(t *testing.T) {
	var s Session

	_, ok := s.Current()
	assert.False(t, ok)
	assert.True(t, s.Stale("9001"), "untracked session is stale for any id")

	s.Begin(context.Background(), "9001")
	id, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "9001", id)
	assert.False(t, s.Stale("9001"))
	assert.True(t, s.Stale("9002"))
}

func TestCancelStopsFetchWithoutAdopting(t *testing.T) {
	var s Session

	tok, ctx := s.Begin(context.Background(), "9001")
	s.Cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	// The identifier is still adopted; only the fetch was stopped.
	id, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "9001", id)
	assert.True(t, s.Accept(tok))

	// Cancel twice is a no-op.
	s.Cancel()
}

func TestParentCancellationPropagates(t *testing.T) {
	var s Session

	parent, cancel := context.WithCancel(context.Background())
	_, ctx := s.Begin(parent, "9001")
	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
