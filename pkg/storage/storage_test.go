package storage

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkSignerSignAndVerify(t *testing.T) {
	signer := NewLinkSigner("secret", time.Hour)
	token, expiresAt, err := signer.Sign("session-1", "session-1/events.ics")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	owner, path, parsedExpiry, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", owner)
	assert.Equal(t, "session-1/events.ics", path)
	assert.True(t, expiresAt.Equal(parsedExpiry))
}

func TestLinkSignerRejectsTamperingAndExpiry(t *testing.T) {
	signer := NewLinkSigner("secret", time.Minute)
	token, _, err := signer.Sign("session-1", "session-1/events.csv")
	require.NoError(t, err)

	_, _, _, err = NewLinkSigner("other", time.Minute).Verify(token)
	assert.ErrorIs(t, err, ErrLinkInvalid)

	_, _, _, err = signer.Verify("session-2" + token[len("session-1"):])
	assert.ErrorIs(t, err, ErrLinkInvalid)

	_, _, _, err = signer.Verify("garbage")
	assert.ErrorIs(t, err, ErrLinkInvalid)

	signer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, _, _, err = signer.Verify(token)
	assert.ErrorIs(t, err, ErrLinkExpired)
}

func TestLinkSignerRequiresSecret(t *testing.T) {
	_, _, err := NewLinkSigner("", time.Minute).Sign("a", "b")
	assert.Error(t, err)
}

func TestFileStoreSaveOpenSweep(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	rel, err := store.Save("session-1/events.csv", []byte("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, "session-1/events.csv", rel)

	file, err := store.Open(rel)
	require.NoError(t, err)
	body, err := io.ReadAll(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	assert.Equal(t, "a,b\n", string(body))

	removed, err := store.Sweep(time.Hour)
	require.NoError(t, err)
	assert.Empty(t, removed)

	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	removed, err = store.Sweep(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"session-1/events.csv"}, removed)

	require.NoError(t, store.Delete(rel))
}

func TestFileStoreRejectsEscapingPaths(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../x", "/etc/passwd", "a/../../x"} {
		_, err := store.Save(name, []byte("x"))
		assert.ErrorIs(t, err, ErrInvalidPath, name)
	}
}
