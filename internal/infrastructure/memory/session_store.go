package memory

import (
	"sync"

	"github.com/medihelp/sally-api/internal/domain/conversation"
	"github.com/medihelp/sally-api/internal/domain/repository"
)

var _ repository.SessionStore = (*SessionStore)(nil)

// SessionStore adaptador en memoria del puerto SessionStore. Las sesiones
// viven hasta el reinicio del proceso; no hay expiración ni réplica entre
// instancias. El mutex protege el mapa, no la sesión: dos peticiones
// concurrentes sobre la misma sesión pueden perder una actualización
// (limitación aceptada del diseño).
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*conversation.Session
}

// NewSessionStore construye el almacén vacío.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*conversation.Session)}
}

// Get devuelve la sesión por ID, si existe.
func (s *SessionStore) Get(id string) (*conversation.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Set guarda o reemplaza la sesión.
func (s *SessionStore) Set(session *conversation.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

// Delete elimina la sesión por ID.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len número de sesiones vivas; útil para diagnóstico.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
