package bot

import "sync"

type sessionState int

const (
	stateIdle sessionState = iota
	stateAwaitName
	stateAwaitPhone
	stateAwaitBroadcast
)

// session is the per-chat conversation state. Only the support form and the
// admin broadcast are stateful; everything else is handled statelessly.
type session struct {
	state sessionState

	// originalQuery is the last search query, carried into the support
	// ticket and the assistant fallback.
	originalQuery string

	// name collected by the support form before the phone step.
	name string

	// askedAI marks that the assistant already answered this query, so a
	// second thumbs-down goes straight to the support form.
	askedAI bool
}

// sessionStore keeps sessions keyed by chat ID. Sessions are small and chats
// are few, so nothing is evicted.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]*session)}
}

// get returns the session for chatID, creating it if needed.
func (s *sessionStore) get(chatID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &session{}
		s.sessions[chatID] = sess
	}
	return sess
}

// reset clears the conversation state but keeps the last query for context.
func (s *sessionStore) reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[chatID]; ok {
		sess.state = stateIdle
		sess.name = ""
	}
}
