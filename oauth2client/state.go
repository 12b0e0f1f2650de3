package oauth2client

import (
	"sync"
	"time"
)

// accessToken is a fetched bearer token. It is replaced wholesale, never mutated.
type accessToken struct {
	value      string
	expiresIn  time.Duration
	acquiredAt time.Time
}

func (t *accessToken) expiry() time.Time {
	return t.acquiredAt.Add(t.expiresIn)
}

// String keeps the bearer value out of logs and %v output.
func (t *accessToken) String() string {
	return "accessToken{value: <redacted>, expiry: " + t.expiry().Format(time.RFC3339) + "}"
}

// tokenState holds the current token. The mutex guards in-memory reads and writes only and
// is never held across network I/O.
type tokenState struct {
	mu    sync.Mutex
	token *accessToken
}

func (s *tokenState) get() (*accessToken, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != nil
}

func (s *tokenState) set(token *accessToken) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}
