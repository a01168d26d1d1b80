package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := GetCache()
	c.Purge()

	c.Set("k1", "v1", time.Minute)
	assert.Equal(t, "v1", c.Get("k1"))
	assert.Nil(t, c.Get("missing"))

	c.Delete("k1")
	assert.Nil(t, c.Get("k1"))
}

func TestCacheTTLExpiry(t *testing.T) {
	c := GetCache()
	c.Purge()

	c.Set("short", "v", 10*time.Millisecond)
	require.Equal(t, "v", c.Get("short"))

	time.Sleep(30 * time.Millisecond)
	assert.Nil(t, c.Get("short"), "过期后读到 nil 而不是旧值")
}

func TestCacheInvalidateTags(t *testing.T) {
	c := GetCache()
	c.Purge()

	c.Set("a", 1, time.Minute, "t1")
	c.Set("b", 2, time.Minute, "t1", "t2")
	c.Set("c", 3, time.Minute, "t2")

	// 失效 t1：a、b 整体清掉，c 不受影响
	c.InvalidateTags("t1")
	assert.Nil(t, c.Get("a"))
	assert.Nil(t, c.Get("b"))
	assert.Equal(t, 3, c.Get("c"))

	c.InvalidateTags("t2")
	assert.Nil(t, c.Get("c"))
}

func TestCacheSetReplacesTags(t *testing.T) {
	c := GetCache()
	c.Purge()

	c.Set("k", "old", time.Minute, "t1")
	// 重新 Set 后旧 tag 关系作废
	c.Set("k", "new", time.Minute, "t2")

	c.InvalidateTags("t1")
	assert.Equal(t, "new", c.Get("k"))

	c.InvalidateTags("t2")
	assert.Nil(t, c.Get("k"))
}

func TestCacheInvalidateUnknownTag(t *testing.T) {
	c := GetCache()
	c.Purge()

	c.Set("k", "v", time.Minute, "t1")
	c.InvalidateTags("never-used")
	assert.Equal(t, "v", c.Get("k"))
}
