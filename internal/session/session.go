// Package session хранит соответствие токенов сессий и имён пользователей в памяти процесса.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Registry — потокобезопасный реестр сессий. Сессии не истекают и живут до Destroy или Close.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// New создаёт пустой реестр.
func New() *Registry {
	return &Registry{sessions: make(map[string]string)}
}

// Create открывает сессию для пользователя и возвращает её токен (случайный UUIDv4).
func (r *Registry) Create(username string) string {
	token := uuid.NewString()
	r.mu.Lock()
	r.sessions[token] = username
	r.mu.Unlock()
	return token
}

// Resolve возвращает имя пользователя по токену.
func (r *Registry) Resolve(token string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	username, ok := r.sessions[token]
	return username, ok
}

// Destroy закрывает сессию. Возвращает false, если токен неизвестен.
func (r *Registry) Destroy(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[token]; !ok {
		return false
	}
	delete(r.sessions, token)
	return true
}

// Len возвращает число открытых сессий.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close закрывает все сессии.
func (r *Registry) Close() {
	r.mu.Lock()
	r.sessions = make(map[string]string)
	r.mu.Unlock()
}
