package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_chat/internal/domain"
	"hotel_chat/internal/storage/memory"
)

func TestSessions_LoadReturnsCopy(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, "s1"))
	require.NoError(t, s.Append(ctx, "s1", domain.Message{Role: domain.RoleUser, Content: "Rome"}))

	conv, err := s.Load(ctx, "s1")
	require.NoError(t, err)
	conv.Append(domain.RoleAssistant, "not persisted")

	again, err := s.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, again.Messages, 1)
	assert.Equal(t, "Rome", again.Messages[0].Content)
}

func TestSessions_CreateIsIdempotent(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, "s1"))
	require.NoError(t, s.Append(ctx, "s1", domain.Message{Role: domain.RoleUser, Content: "Oslo"}))
	require.NoError(t, s.Create(ctx, "s1"))

	conv, err := s.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, conv.Messages, 1)
}

func TestSessions_Unknown(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	_, err := s.Load(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Append(ctx, "nope"), domain.ErrNotFound)

	require.NoError(t, s.Create(ctx, "x"))
	require.NoError(t, s.Delete(ctx, "x"))
	_, err = s.Load(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
