package credstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRegisterAndValidate(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "alice", "pw1"))

	valid, err := s.Validate(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = s.Validate(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, valid)

	valid, err = s.Validate(ctx, "nobody", "pw1")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestMemoryStoreDuplicateUsername(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "alice", "pw1"))
	assert.ErrorIs(t, s.Register(ctx, "alice", "other"), ErrUsernameTaken)

	// The original password still validates.
	valid, err := s.Validate(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.True(t, valid)
}
