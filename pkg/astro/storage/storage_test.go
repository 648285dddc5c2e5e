package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPutGetRoundTrip(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	content := []byte("%PDF-1.4 fake content")
	key, err := l.Put(context.Background(), "Brihat Parashara Hora Shastra", content)
	require.NoError(t, err)
	assert.Contains(t, key, "sources/Brihat-Parashara-Hora-Shastra/")

	got, err := l.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestLocalPutIsContentAddressed(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	content := []byte("same bytes")
	key1, err := l.Put(context.Background(), "Book", content)
	require.NoError(t, err)
	key2, err := l.Put(context.Background(), "Book", content)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)
}

func TestLocalGetMissingKey(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = l.Get(context.Background(), "sources/x/does-not-exist.pdf")
	assert.Error(t, err)
}

func TestLocalIsHealthy(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	assert.True(t, l.IsHealthy(context.Background()))
}
