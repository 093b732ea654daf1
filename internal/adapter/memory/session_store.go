package memory

import (
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"
)

// expiredCookieSkew is how far in the past a logout cookie's Expires is set.
const expiredCookieSkew = 5 * time.Second

// SessionStore is a gorilla/sessions Store that keeps session values in
// process memory and sends only the opaque session id to the client.
// Sessions never expire on their own; a save with Options.MaxAge < 0
// clears the values and tells the client to drop the cookie.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]map[any]any
	clock    clockwork.Clock

	Options *sessions.Options
}

var _ sessions.Store = (*SessionStore)(nil)

func NewSessionStore(clock clockwork.Clock, opts sessions.Options) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]map[any]any),
		clock:    clock,
		Options:  &opts,
	}
}

// Get returns the session cached in the request registry, loading it on
// first use.
func (s *SessionStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New resolves the session named by the request cookie. An absent or
// unknown id yields a fresh session with a newly minted id.
func (s *SessionStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	if cookie, err := r.Cookie(name); err == nil && cookie.Value != "" {
		if values, ok := s.load(cookie.Value); ok {
			session.ID = cookie.Value
			session.Values = values
			session.IsNew = false
			return session, nil
		}
	}

	session.ID = uuid.NewString()
	return session, nil
}

// Save stores the session values and writes the id cookie.
func (s *SessionStore) Save(_ *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.Options == nil {
		opts := *s.Options
		session.Options = &opts
	}

	expired := session.Options.MaxAge < 0
	values := maps.Clone(session.Values)
	if expired || values == nil {
		values = make(map[any]any)
	}

	s.mu.Lock()
	s.sessions[session.ID] = values
	s.mu.Unlock()

	cookie := sessions.NewCookie(session.Name(), session.ID, session.Options)
	if expired {
		cookie.Expires = s.clock.Now().Add(-expiredCookieSkew)
	}
	http.SetCookie(w, cookie)
	return nil
}

// Len reports how many session ids the store knows.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) load(id string) (map[any]any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return maps.Clone(values), true
}
