package ai

import "sync"

// sessionRegistry holds the long-lived chat per feature area. Each entry
// carries its own lock: two requests for the same feature serialize on
// the entry, not on the whole registry, and never interleave inside the
// underlying chat session.
type sessionRegistry struct {
	factory  ChatFactory
	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu   sync.Mutex
	chat Chat
}

func newSessionRegistry(factory ChatFactory) *sessionRegistry {
	return &sessionRegistry{
		factory:  factory,
		sessions: make(map[string]*session),
	}
}

func (r *sessionRegistry) get(feature, systemMessage string) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[feature]; ok {
		return s, nil
	}
	chat, err := r.factory.NewChat(systemMessage)
	if err != nil {
		return nil, err
	}
	s := &session{chat: chat}
	r.sessions[feature] = s
	return s, nil
}

func (r *sessionRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
