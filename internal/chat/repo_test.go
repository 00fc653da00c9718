package chat

import (
	"context"
	"fmt"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(&User{}, &Event{}), "automigrate")
	return db
}

func TestAppendThenRecent(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	id1, err := repo.Append(ctx, "u1", KindChatUser, "first")
	require.NoError(t, err)
	require.NotZero(t, id1)

	id2, err := repo.Append(ctx, "u1", KindChatLLM, "second")
	require.NoError(t, err)
	require.Greater(t, id2, id1)

	evs, err := repo.Recent(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, evs, 2)

	// newest first
	require.Equal(t, "second", evs[0].Content)
	require.Equal(t, KindChatLLM, evs[0].Kind)
	require.Equal(t, "first", evs[1].Content)
}

func TestRecentLimit(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := repo.Append(ctx, "u1", KindChatUser, fmt.Sprintf("msg-%d", i))
		require.NoError(t, err)
	}

	evs, err := repo.Recent(ctx, "u1", 3)
	require.NoError(t, err)
	require.Len(t, evs, 3)
	require.Equal(t, "msg-6", evs[0].Content)

	// other users are not visible
	evs, err = repo.Recent(ctx, "u2", 10)
	require.NoError(t, err)
	require.Empty(t, evs)
}

func TestClearIsIdempotent(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	_, err := repo.Append(ctx, "u1", KindChatUser, "hello")
	require.NoError(t, err)
	_, err = repo.Append(ctx, "u2", KindChatUser, "keep me")
	require.NoError(t, err)

	require.NoError(t, repo.Clear(ctx, "u1"))
	evs, err := repo.Recent(ctx, "u1", 10)
	require.NoError(t, err)
	require.Empty(t, evs)

	// second clear is a no-op, not an error
	require.NoError(t, repo.Clear(ctx, "u1"))

	evs, err = repo.Recent(ctx, "u2", 10)
	require.NoError(t, err)
	require.Len(t, evs, 1)
}

func TestEnsureUserIsWriteOnce(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.EnsureUser(ctx, "u1", "original info"))
	require.NoError(t, repo.EnsureUser(ctx, "u1", "overwrite attempt"))

	u, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "original info", u.Info)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestAppendRejectsEmptyUser(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	_, err := repo.Append(context.Background(), "", KindChatUser, "hello")
	require.Error(t, err)
}
