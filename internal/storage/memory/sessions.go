// Package memory is the in-process conversation store used by the terminal
// chat and by the API when no redis is configured.
package memory

import (
	"context"
	"sync"

	"hotel_chat/internal/adapters/observability"
	"hotel_chat/internal/domain"
)

type Sessions struct {
	mu   sync.Mutex
	data map[string][]domain.Message
}

func New() *Sessions { return &Sessions{data: map[string][]domain.Message{}} }

func (s *Sessions) Create(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; !ok {
		s.data[id] = []domain.Message{}
	}
	observability.ObserveSession("memory", "create")
	return nil
}

// Load returns a copy; callers append to it and write back through Append.
func (s *Sessions) Load(ctx context.Context, id string) (*domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, ok := s.data[id]
	if !ok {
		observability.ObserveSession("memory", "miss")
		return nil, domain.ErrNotFound
	}
	observability.ObserveSession("memory", "load")
	cp := make([]domain.Message, len(msgs))
	copy(cp, msgs)
	return &domain.Conversation{ID: id, Messages: cp}, nil
}

func (s *Sessions) Append(ctx context.Context, id string, msgs ...domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.data[id]
	if !ok {
		return domain.ErrNotFound
	}
	observability.ObserveSession("memory", "append")
	s.data[id] = append(cur, msgs...)
	return nil
}

func (s *Sessions) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	observability.ObserveSession("memory", "del")
	return nil
}
