package dialog

import (
	"sync"
	"time"

	"github.com/GregMSThompson/expat-financier/internal/models"
)

// Session is the per-identity conversation state. Only Profile is ever
// persisted; PendingCategory lives here until its amount is confirmed.
type Session struct {
	mu              sync.Mutex
	State           State
	Profile         *models.Profile
	PendingCategory models.ExpenseCategory

	// guarded by sessions.mu
	refs     int
	lastSeen time.Time
}

type sessions struct {
	mu     sync.Mutex
	byUser map[string]*Session
}

func newSessions() *sessions {
	return &sessions{byUser: make(map[string]*Session)}
}

// acquire returns the locked session for uid, creating it if needed.
// Callers must hand it back with release.
func (s *sessions) acquire(uid string) (sess *Session, created bool) {
	s.mu.Lock()
	sess, ok := s.byUser[uid]
	if !ok {
		sess = &Session{}
		s.byUser[uid] = sess
	}
	sess.refs++
	s.mu.Unlock()

	sess.mu.Lock()
	return sess, !ok
}

func (s *sessions) release(sess *Session, now time.Time) {
	sess.mu.Unlock()

	s.mu.Lock()
	sess.refs--
	sess.lastSeen = now
	s.mu.Unlock()
}

// evictIdle drops sessions nobody holds that were last used before cutoff.
// A dropped user starts over from their stored profile on the next event.
func (s *sessions) evictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for uid, sess := range s.byUser {
		if sess.refs == 0 && sess.lastSeen.Before(cutoff) {
			delete(s.byUser, uid)
			n++
		}
	}
	return n
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byUser)
}

// state reports the current state of uid, if it has a session.
func (s *sessions) state(uid string) (State, bool) {
	s.mu.Lock()
	sess, ok := s.byUser[uid]
	s.mu.Unlock()
	if !ok {
		return 0, false
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.State, true
}
