package events

import (
	"sync"

	"ridersync/internal/entities"
)

// Scope собирает подписки одного потребителя, чтобы снять их все разом.
// Close предполагается вызывать через defer.
type Scope struct {
	registry *Registry

	mu     sync.Mutex
	subs   []*Subscription
	closed bool
}

func (r *Registry) NewScope() *Scope {
	return &Scope{registry: r}
}

// On регистрирует обработчик внутри scope. После Close ничего не регистрирует,
// возвращенная подписка уже неактивна.
func (s *Scope) On(name entities.EventName, handler Handler) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return &Subscription{registry: s.registry, name: name, handler: handler}
	}

	sub := s.registry.Subscribe(name, handler)
	s.subs = append(s.subs, sub)
	return sub
}

// Close снимает ровно те подписки, что были сделаны через этот scope. Идемпотентен.
func (s *Scope) Close() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.closed = true
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}
