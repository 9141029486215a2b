package sessions_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/shadowdark-gm/internal/domain/session"
	gmerr "github.com/KirkDiggler/shadowdark-gm/internal/errors"
	"github.com/KirkDiggler/shadowdark-gm/internal/repositories/sessions"
)

func newRedisRepo(t *testing.T) (sessions.Repository, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	repo, err := sessions.NewRedisRepository(&sessions.RedisRepositoryConfig{Client: client})
	require.NoError(t, err)
	return repo, mock
}

func testState(sessionID string) *session.State {
	state := session.NewState(sessionID)
	// Fixed timestamp so the marshaled payload is deterministic
	state.UpdatedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return state
}

func TestRedisRepository_New(t *testing.T) {
	_, err := sessions.NewRedisRepository(nil)
	assert.True(t, gmerr.IsInvalidArgument(err))

	_, err = sessions.NewRedisRepository(&sessions.RedisRepositoryConfig{})
	assert.True(t, gmerr.IsInvalidArgument(err))
}

func TestRedisRepository_Get(t *testing.T) {
	repo, mock := newRedisRepo(t)
	state := testState("session-1")
	data, err := json.Marshal(state)
	require.NoError(t, err)

	mock.ExpectGet("gm:session:session-1").SetVal(string(data))

	got, err := repo.Get(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, "session-1", got.SessionID)
	assert.Equal(t, state.UpdatedAt, got.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRepository_GetMissing(t *testing.T) {
	repo, mock := newRedisRepo(t)

	mock.ExpectGet("gm:session:nope").RedisNil()

	_, err := repo.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, gmerr.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRepository_GetCorrupt(t *testing.T) {
	repo, mock := newRedisRepo(t)

	mock.ExpectGet("gm:session:bad").SetVal("{not json")

	_, err := repo.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.False(t, gmerr.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRepository_Save(t *testing.T) {
	repo, mock := newRedisRepo(t)
	state := testState("session-1")
	data, err := json.Marshal(state)
	require.NoError(t, err)

	mock.ExpectSet("gm:session:session-1", data, 0).SetVal("OK")
	mock.ExpectSAdd("gm:sessions", "session-1").SetVal(1)

	require.NoError(t, repo.Save(context.Background(), state))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRepository_SaveInvalid(t *testing.T) {
	repo, _ := newRedisRepo(t)

	err := repo.Save(context.Background(), nil)
	assert.True(t, gmerr.IsInvalidArgument(err))

	err = repo.Save(context.Background(), &session.State{})
	assert.True(t, gmerr.IsInvalidArgument(err))
}

func TestRedisRepository_Delete(t *testing.T) {
	repo, mock := newRedisRepo(t)

	mock.ExpectDel("gm:session:session-1").SetVal(1)
	mock.ExpectSRem("gm:sessions", "session-1").SetVal(1)

	require.NoError(t, repo.Delete(context.Background(), "session-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRepository_List(t *testing.T) {
	repo, mock := newRedisRepo(t)
	state := testState("session-1")
	data, err := json.Marshal(state)
	require.NoError(t, err)

	mock.ExpectSMembers("gm:sessions").SetVal([]string{"session-1"})
	mock.ExpectGet("gm:session:session-1").SetVal(string(data))

	states, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "session-1", states[0].SessionID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRepository_ListEmpty(t *testing.T) {
	repo, mock := newRedisRepo(t)

	mock.ExpectSMembers("gm:sessions").SetVal([]string{})

	states, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, states)
	require.NoError(t, mock.ExpectationsWereMet())
}
