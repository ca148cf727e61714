package storage

import (
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	key := uuid.New().String()
	n, err := store.Put(key, strings.NewReader("scan contents"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("scan contents")), n)

	r, size, err := store.Get(key)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, n, size)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "scan contents", string(data))

	require.NoError(t, store.Delete(key))
	_, _, err = store.Get(key)
	assert.ErrorIs(t, err, ErrObjectNotFound)

	// deleting twice is fine
	assert.NoError(t, store.Delete(key))
}

func TestDiskStoreRejectsBadKeys(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../../etc/passwd", "plain-name", "A8B/..", uuid.New().String() + "x"} {
		_, putErr := store.Put(key, strings.NewReader("x"))
		assert.ErrorIs(t, putErr, ErrInvalidKey, key)
		_, _, getErr := store.Get(key)
		assert.ErrorIs(t, getErr, ErrInvalidKey, key)
	}
}

func TestURLSignerRoundTrip(t *testing.T) {
	signer := NewURLSigner("test-secret")
	path := "/documents/42/view"

	signed := signer.Sign(path, time.Minute)
	parsed, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, path, parsed.Path)

	q := parsed.Query()
	require.NoError(t, signer.Verify(path, q.Get("expires"), q.Get("sig")))

	// a different path fails verification
	assert.ErrorIs(t, signer.Verify("/documents/43/view", q.Get("expires"), q.Get("sig")), ErrSignatureInvalid)

	// tampered signature fails
	assert.ErrorIs(t, signer.Verify(path, q.Get("expires"), "deadbeef"), ErrSignatureInvalid)

	// garbage expiry fails closed
	assert.ErrorIs(t, signer.Verify(path, "soon", q.Get("sig")), ErrSignatureInvalid)
}

func TestURLSignerExpiry(t *testing.T) {
	signer := NewURLSigner("test-secret")
	path := "/documents/42/view"

	signed := signer.Sign(path, -time.Minute)
	parsed, err := url.Parse(signed)
	require.NoError(t, err)

	q := parsed.Query()
	assert.ErrorIs(t, signer.Verify(path, q.Get("expires"), q.Get("sig")), ErrSignatureExpired)
}
