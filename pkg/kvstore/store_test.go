package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	key := "userToken-" + uuid.NewString()

	_, err := s.Get(ctx, key)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, key, "tok-1"))
	v, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", v)

	require.NoError(t, s.Set(ctx, key, "tok-2"))
	v, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", v)

	require.NoError(t, s.Remove(ctx, key))
	_, err = s.Get(ctx, key)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Remove(ctx, key), "removing a missing key is not an error")
}

func TestMemory(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	exerciseStore(t, m)
	assert.Zero(t, m.Len())
}

func TestGorm_SQLiteMemory(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), "sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, ok := s.(*Gorm)
	require.True(t, ok)
	exerciseStore(t, s)
}

func TestGorm_SQLiteFileSurvivesReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "storefront.db")

	s, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "userToken", "persisted"))
	require.NoError(t, s.Close())

	s, err = Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	v, err := s.Get(ctx, "userToken")
	require.NoError(t, err)
	assert.Equal(t, "persisted", v)
}

func TestOpen_Memory(t *testing.T) {
	t.Parallel()

	for _, dsn := range []string{"", "memory://"} {
		s, err := Open(context.Background(), dsn)
		require.NoError(t, err)
		_, ok := s.(*Memory)
		assert.True(t, ok, dsn)
	}
}

func TestRedis(t *testing.T) {
	url := os.Getenv("STOREFRONT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: STOREFRONT_TEST_REDIS_URL not set")
	}

	s, err := Open(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("STOREFRONT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_DATABASE_URL is required for tests")
	}

	s, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)
}

func TestNewRedis_RequiresURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedis(context.Background(), RedisOptions{})
	require.Error(t, err)
}
