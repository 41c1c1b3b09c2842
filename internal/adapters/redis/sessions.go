package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hotel_chat/internal/adapters/observability"
	"hotel_chat/internal/domain"
)

// Sessions keeps each conversation as a redis list of JSON messages plus a
// marker key, both expiring ttl after the last write.
type Sessions struct {
	c   *redis.Client
	ttl time.Duration
}

func New(addr, pass string, db int, ttl time.Duration) *Sessions {
	return &Sessions{
		c:   redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		ttl: ttl,
	}
}

func (s *Sessions) Ping(ctx context.Context) error { return s.c.Ping(ctx).Err() }

func (s *Sessions) Close() error { return s.c.Close() }

func metaKey(id string) string { return fmt.Sprintf("session:%s:meta", id) }
func msgsKey(id string) string { return fmt.Sprintf("session:%s:messages", id) }

func (s *Sessions) Create(ctx context.Context, id string) error {
	observability.ObserveSession("redis", "create")
	return s.c.Set(ctx, metaKey(id), time.Now().UTC().Format(time.RFC3339), s.ttl).Err()
}

func (s *Sessions) Load(ctx context.Context, id string) (*domain.Conversation, error) {
	n, err := s.c.Exists(ctx, metaKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		observability.ObserveSession("redis", "miss")
		return nil, domain.ErrNotFound
	}
	raw, err := s.c.LRange(ctx, msgsKey(id), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	observability.ObserveSession("redis", "load")

	conv := &domain.Conversation{ID: id, Messages: make([]domain.Message, 0, len(raw))}
	for _, r := range raw {
		var m domain.Message
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			return nil, fmt.Errorf("decode session %s message: %w", id, err)
		}
		conv.Messages = append(conv.Messages, m)
	}
	return conv, nil
}

func (s *Sessions) Append(ctx context.Context, id string, msgs ...domain.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	n, err := s.c.Exists(ctx, metaKey(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	vals := make([]any, 0, len(msgs))
	for _, m := range msgs {
		b, err := json.Marshal(m)
		if err != nil {
			return err
		}
		vals = append(vals, b)
	}
	observability.ObserveSession("redis", "append")
	_, err = s.c.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, msgsKey(id), vals...)
		p.Expire(ctx, msgsKey(id), s.ttl)
		p.Expire(ctx, metaKey(id), s.ttl)
		return nil
	})
	return err
}

func (s *Sessions) Delete(ctx context.Context, id string) error {
	observability.ObserveSession("redis", "del")
	return s.c.Del(ctx, metaKey(id), msgsKey(id)).Err()
}
