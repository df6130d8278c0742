// Package viewstate coordinates entity views with the fetches issued on
// their behalf. A view owns one Session; every time the routed identifier
// changes, the view calls Begin, which cancels the fetch in flight and hands
// back a token. A response is applied only if its token is still current, so
// a slow response for a previous identifier can never overwrite the state of
// the one now on screen, no matter which request completes last.
package viewstate

import (
	"context"
	"sync"
)

// Token identifies one fetch generation for one identifier.
type Token struct {
	ID  string
	gen uint64
}

// Session tracks the identifier a view is displaying and the generation of
// the fetch allowed to update it. The zero value is ready to use.
type Session struct {
	mu     sync.Mutex
	id     string
	gen    uint64
	cancel context.CancelFunc
}

// Begin adopts the given identifier, cancels any fetch still in flight, and
// returns the token and context for the new fetch. The returned context is a
// child of parent and is cancelled by the next Begin or by Cancel.
func (s *Session) Begin(parent context.Context, id string) (Token, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	s.id = id

	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	return Token{ID: id, gen: s.gen}, ctx
}

// Accept reports whether a response carrying t may update the view. It is
// true only for the most recent Begin.
func (s *Session) Accept(t Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.gen == s.gen && t.ID == s.id
}

// Current returns the identifier the view is synchronized to, and whether
// one has been adopted at all.
func (s *Session) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.gen > 0
}

// Stale reports whether id differs from the identifier the session holds.
// Views use this to decide whether a render needs a reset-and-fetch.
func (s *Session) Stale(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == 0 || s.id != id
}

// Cancel aborts the fetch in flight, if any, without adopting a new
// identifier. Responses for the cancelled fetch are still rejected by
// Accept only after the next Begin, so callers that want a hard stop
// should drop their token as well.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
