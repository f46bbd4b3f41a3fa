package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/my-drive/internal/domain"
)

func sharedFile(t *testing.T, e *env) (domain.UserID, domain.File) {
	t.Helper()
	alice := e.user(t, "a@x.com")
	docs := folder(t, e, alice, "Docs")
	return alice, upload(t, e, alice, docs.ID, "shared.txt", "shared")
}

func TestShareLinkCreateAndAccess(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	alice, f := sharedFile(t, e)

	l, err := e.links.Create(ctx, alice, f.ID, nil)
	require.NoError(t, err)
	assert.False(t, l.IsDisabled)
	assert.Nil(t, l.ExpiresAt)
	assert.Equal(t, alice, l.OwnerID)
	assert.Equal(t, f.ID, l.FileID)

	raw, err := base64.RawURLEncoding.DecodeString(l.Token)
	require.NoError(t, err, "token %q is not url-safe base64", l.Token)
	assert.GreaterOrEqual(t, len(raw), 32)

	url, err := e.links.Access(ctx, l.Token)
	require.NoError(t, err)
	assert.Contains(t, url, "/"+f.StorageKey+"?")
}

func TestShareLinkTokensUnique(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	alice, f := sharedFile(t, e)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		l, err := e.links.Create(ctx, alice, f.ID, nil)
		require.NoError(t, err)
		require.False(t, seen[l.Token], "duplicate token %q", l.Token)
		seen[l.Token] = true
	}

	links, err := e.links.List(ctx, alice, f.ID)
	require.NoError(t, err)
	assert.Len(t, links, 20)
}

func TestShareLinkTokenCollisionRetry(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	alice, f := sharedFile(t, e)

	tokens := []string{"dup", "dup", "fresh"}
	e.links.newToken = func() (string, error) {
		tok := tokens[0]
		tokens = tokens[1:]
		return tok, nil
	}
	_, err := e.links.Create(ctx, alice, f.ID, nil)
	require.NoError(t, err)

	l, err := e.links.Create(ctx, alice, f.ID, nil)
	require.NoError(t, err, "retry did not recover")
	assert.Equal(t, "fresh", l.Token)

	e.links.newToken = func() (string, error) { return "dup", nil }
	_, err = e.links.Create(ctx, alice, f.ID, nil)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestShareLinkDisableIsPermanent(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	alice, f := sharedFile(t, e)

	future := e.store.now.Add(24 * time.Hour)
	l, err := e.links.Create(ctx, alice, f.ID, &future)
	require.NoError(t, err)

	require.NoError(t, e.links.Disable(ctx, alice, l.ID))
	require.NoError(t, e.links.Disable(ctx, alice, l.ID), "second disable must be idempotent")

	_, err = e.links.Access(ctx, l.Token)
	assert.ErrorIs(t, err, domain.ErrShareLinkDisabled)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShareLinkDisableForeignOrMissing(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	alice, f := sharedFile(t, e)
	bob := e.user(t, "b@x.com")

	l, err := e.links.Create(ctx, alice, f.ID, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, e.links.Disable(ctx, bob, l.ID), domain.ErrShareLinkNotFound)
	assert.ErrorIs(t, e.links.Disable(ctx, alice, uuid.New()), domain.ErrShareLinkNotFound)

	_, err = e.links.Access(ctx, l.Token)
	assert.NoError(t, err, "link must stay active after foreign disable")
}

func TestShareLinkExpiry(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	alice, f := sharedFile(t, e)

	past := e.store.now.Add(-time.Hour)
	l, err := e.links.Create(ctx, alice, f.ID, &past)
	require.NoError(t, err)

	_, err = e.links.Access(ctx, l.Token)
	assert.ErrorIs(t, err, domain.ErrShareLinkExpired)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// ровно на границе ещё доступна: истекает только если expires_at строго раньше now
	edge := e.store.now
	l2, err := e.links.Create(ctx, alice, f.ID, &edge)
	require.NoError(t, err)

	_, err = e.links.Access(ctx, l2.Token)
	assert.NoError(t, err)
}

func TestShareLinkAccessUnknownAndDeletedFile(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	alice, f := sharedFile(t, e)

	_, err := e.links.Access(ctx, "no-such-token")
	assert.ErrorIs(t, err, domain.ErrShareLinkNotFound)
	_, err = e.links.Access(ctx, "")
	assert.ErrorIs(t, err, domain.ErrShareLinkNotFound)

	l, err := e.links.Create(ctx, alice, f.ID, nil)
	require.NoError(t, err)
	require.NoError(t, e.files.DeleteFile(ctx, alice, f.ID))

	_, err = e.links.Access(ctx, l.Token)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestShareLinkCreateIsolation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, f := sharedFile(t, e)
	bob := e.user(t, "b@x.com")

	_, err := e.links.Create(ctx, bob, f.ID, nil)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)

	_, err = e.links.List(ctx, bob, f.ID)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}
