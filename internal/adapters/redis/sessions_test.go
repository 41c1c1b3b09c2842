package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "hotel_chat/internal/adapters/redis"
	"hotel_chat/internal/domain"
)

func newStore(t *testing.T) (*redisad.Sessions, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := redisad.New(mr.Addr(), "", 0, 30*time.Minute)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestSessions_CreateAppendLoad(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "abc"))

	conv, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", conv.ID)
	assert.Empty(t, conv.Messages)

	require.NoError(t, s.Append(ctx, "abc",
		domain.Message{Role: domain.RoleUser, Content: "Lisbon"},
		domain.Message{Role: domain.RoleAssistant, Content: "No hotels found. Try another city!"},
	))
	require.NoError(t, s.Append(ctx, "abc", domain.Message{Role: domain.RoleUser, Content: "Porto"}))

	conv, err = s.Load(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, conv.Messages, 3)
	assert.Equal(t, domain.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, "Lisbon", conv.Messages[0].Content)
	assert.Equal(t, domain.RoleAssistant, conv.Messages[1].Role)
	assert.Equal(t, "Porto", conv.Messages[2].Content)
}

func TestSessions_UnknownSession(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	_, err := s.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = s.Append(ctx, "missing", domain.Message{Role: domain.RoleUser, Content: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessions_ExpireAndDelete(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "a"))
	require.NoError(t, s.Create(ctx, "b"))

	mr.FastForward(31 * time.Minute)
	_, err := s.Load(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Create(ctx, "b"))
	require.NoError(t, s.Delete(ctx, "b"))
	_, err = s.Load(ctx, "b")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
