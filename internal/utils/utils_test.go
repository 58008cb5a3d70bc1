package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-admin-console/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestUpperFirst(t *testing.T) {
	require.Equal(t, "IsActive", utils.UpperFirst("isActive"))
	require.Equal(t, "Ürün", utils.UpperFirst("ürün"))
	require.Equal(t, "", utils.UpperFirst(""))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", utils.Truncate("short", 10))
	require.Equal(t, "abc...", utils.Truncate("abc def", 4))
	require.Equal(t, "çğış...", utils.Truncate("çğışöü", 4))
	require.Equal(t, "untouched", utils.Truncate("untouched", 0))
}

func TestPtr(t *testing.T) {
	v := 42
	p := utils.Ptr(v)
	*p = 7
	require.Equal(t, 42, v, "Ptr points at a copy")
}

func TestFirstNonEmpty(t *testing.T) {
	require.Equal(t, "b", utils.FirstNonEmpty("", "b", "c"))
	require.Equal(t, "", utils.FirstNonEmpty("", ""))
}
