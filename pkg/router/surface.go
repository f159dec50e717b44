package router

import (
	"strings"
	"sync"

	"github.com/vango-dev/hashview/pkg/loop"
)

// Surface holds the current navigation token and reports changes to it.
// Tokens are stored without the leading '#'.
type Surface interface {
	// Token returns the current token, or "" if there is none.
	Token() string

	// SetToken replaces the current token. Subscribers are notified
	// asynchronously if the token changed.
	SetToken(token string)

	// Subscribe makes fn the single subscriber, called with the new token
	// after each change. It replaces any previous subscriber. The returned
	// function removes fn if it is still the subscriber.
	Subscribe(fn func(token string)) (unsubscribe func())
}

// MemorySurface is an in-memory Surface with browser-like history.
// Notifications are posted to the loop given to NewMemorySurface, or
// delivered synchronously without one.
type MemorySurface struct {
	loop *loop.Loop

	mu      sync.Mutex
	history []string
	pos     int
	sub     func(string)
	subID   int
}

// NewMemorySurface creates a surface whose current token is initial.
func NewMemorySurface(l *loop.Loop, initial string) *MemorySurface {
	return &MemorySurface{
		loop:    l,
		history: []string{trimHash(initial)},
	}
}

// Token implements Surface.
func (s *MemorySurface) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history[s.pos]
}

// SetToken implements Surface. A leading '#' is ignored. Setting the current
// token again does nothing.
func (s *MemorySurface) SetToken(token string) {
	token = trimHash(token)
	s.mu.Lock()
	if s.history[s.pos] == token {
		s.mu.Unlock()
		return
	}
	s.history = append(s.history[:s.pos+1], token)
	s.pos++
	s.mu.Unlock()
	s.notify(token)
}

// Back moves to the previous history entry. It reports whether there was one.
func (s *MemorySurface) Back() bool {
	return s.move(-1)
}

// Forward moves to the next history entry. It reports whether there was one.
func (s *MemorySurface) Forward() bool {
	return s.move(1)
}

// History returns the history entries and the index of the current one.
func (s *MemorySurface) History() ([]string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...), s.pos
}

func (s *MemorySurface) move(delta int) bool {
	s.mu.Lock()
	next := s.pos + delta
	if next < 0 || next >= len(s.history) {
		s.mu.Unlock()
		return false
	}
	changed := s.history[next] != s.history[s.pos]
	s.pos = next
	token := s.history[next]
	s.mu.Unlock()
	if changed {
		s.notify(token)
	}
	return true
}

// Subscribe implements Surface.
func (s *MemorySurface) Subscribe(fn func(token string)) func() {
	s.mu.Lock()
	s.subID++
	id := s.subID
	s.sub = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		if s.subID == id {
			s.sub = nil
		}
		s.mu.Unlock()
	}
}

// Subscribers returns the number of active subscriptions, 0 or 1.
func (s *MemorySurface) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub == nil {
		return 0
	}
	return 1
}

// notify delivers token to whichever subscriber is current at delivery time.
func (s *MemorySurface) notify(token string) {
	deliver := func() {
		s.mu.Lock()
		fn := s.sub
		s.mu.Unlock()
		if fn != nil {
			fn(token)
		}
	}
	if s.loop == nil {
		deliver()
		return
	}
	s.loop.Post(deliver)
}

func trimHash(token string) string {
	return strings.TrimPrefix(token, "#")
}
