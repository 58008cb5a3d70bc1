package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-admin-console/storage"
	"github.com/stretchr/testify/require"
)

// exerciseArea runs the contract every Area implementation must satisfy.
func exerciseArea(t *testing.T, area storage.Area) {
	t.Helper()

	_, ok, err := area.Get("adminToken")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, area.Set("adminToken", "demo-token-1"))
	v, ok, err := area.Get("adminToken")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "demo-token-1", v)

	require.NoError(t, area.Set("adminToken", "demo-token-2"))
	v, _, err = area.Get("adminToken")
	require.NoError(t, err)
	require.Equal(t, "demo-token-2", v, "last writer wins")

	require.NoError(t, area.Remove("adminToken"))
	_, ok, err = area.Get("adminToken")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, area.Remove("adminToken"), "removing a missing key is fine")
}

func TestMemoryArea(t *testing.T) {
	area := storage.NewMemoryArea()
	exerciseArea(t, area)

	require.Error(t, area.Set("", "x"))
	require.Equal(t, 0, area.Len())
}

func TestFileArea(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "local-storage.json")
	exerciseArea(t, storage.NewFileArea(path))

	t.Run("persists across instances", func(t *testing.T) {
		first := storage.NewFileArea(path)
		require.NoError(t, first.Set("adminUser", `{"username":"admin"}`))

		second := storage.NewFileArea(path)
		v, ok, err := second.Get("adminUser")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, `{"username":"admin"}`, v)
	})

	t.Run("corrupt file", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))
		_, _, err := storage.NewFileArea(bad).Get("adminToken")
		require.Error(t, err)
	})
}

func TestRedisArea(t *testing.T) {
	url := os.Getenv("ADMIN_TEST_REDIS_URL")
	if url == "" {
		t.Skip("ADMIN_TEST_REDIS_URL not set")
	}

	area, err := storage.NewRedisArea(storage.RedisAreaOptions{URL: url, Prefix: "admin-console-test:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = area.Close() })

	exerciseArea(t, area)
}

func TestNewRedisArea_RequiresURL(t *testing.T) {
	_, err := storage.NewRedisArea(storage.RedisAreaOptions{})
	require.Error(t, err)
}
