package sessions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/shadowdark-gm/internal/domain/session"
	gmerr "github.com/KirkDiggler/shadowdark-gm/internal/errors"
	"github.com/KirkDiggler/shadowdark-gm/internal/repositories/sessions"
)

func TestInMemoryRepository_SaveAndGet(t *testing.T) {
	repo := sessions.NewInMemoryRepository()
	ctx := context.Background()

	state := session.NewState("session-1")
	require.NoError(t, repo.Save(ctx, state))

	got, err := repo.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "session-1", got.SessionID)
	assert.NotNil(t, got.Combat)
	assert.NotNil(t, got.Spells)
}

func TestInMemoryRepository_GetMissing(t *testing.T) {
	repo := sessions.NewInMemoryRepository()

	_, err := repo.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, gmerr.IsNotFound(err))
}

func TestInMemoryRepository_SaveInvalid(t *testing.T) {
	repo := sessions.NewInMemoryRepository()
	ctx := context.Background()

	err := repo.Save(ctx, nil)
	assert.True(t, gmerr.IsInvalidArgument(err))

	err = repo.Save(ctx, &session.State{})
	assert.True(t, gmerr.IsInvalidArgument(err))
}

func TestInMemoryRepository_Delete(t *testing.T) {
	repo := sessions.NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, session.NewState("session-1")))
	require.NoError(t, repo.Delete(ctx, "session-1"))

	_, err := repo.Get(ctx, "session-1")
	assert.True(t, gmerr.IsNotFound(err))

	err = repo.Delete(ctx, "session-1")
	assert.True(t, gmerr.IsNotFound(err))
}

func TestInMemoryRepository_List(t *testing.T) {
	repo := sessions.NewInMemoryRepository()
	ctx := context.Background()

	states, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, states)

	require.NoError(t, repo.Save(ctx, session.NewState("a")))
	require.NoError(t, repo.Save(ctx, session.NewState("b")))

	states, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, states, 2)

	ids := []string{states[0].SessionID, states[1].SessionID}
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}
