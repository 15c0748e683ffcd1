package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestResponseCache_GetSet(t *testing.T) {
	defer goleak.VerifyNone(t)

	cache := newResponseCache(time.Minute)
	defer cache.Close()

	_, found := cache.get("missing")
	assert.False(t, found)

	cache.set("k", TaskResponse{CategoryName: "Casa"})
	resp, found := cache.get("k")
	assert.True(t, found)
	assert.Equal(t, "Casa", resp.CategoryName)
	assert.Equal(t, 1, cache.size())
}

func TestResponseCache_Expiry(t *testing.T) {
	defer goleak.VerifyNone(t)

	cache := newResponseCache(20 * time.Millisecond)
	defer cache.Close()

	cache.set("k", TaskResponse{CategoryName: "Casa"})
	time.Sleep(30 * time.Millisecond)

	_, found := cache.get("k")
	assert.False(t, found)

	assert.Eventually(t, func() bool { return cache.size() == 0 }, time.Second, 10*time.Millisecond)
}

func TestResponseCache_CloseTwice(t *testing.T) {
	defer goleak.VerifyNone(t)

	cache := newResponseCache(0)
	cache.Close()
	assert.NotPanics(t, cache.Close)
}

func TestCleanupInterval(t *testing.T) {
	assert.Equal(t, time.Second, cleanupInterval(time.Second))
	assert.Equal(t, 5*time.Minute, cleanupInterval(time.Hour))
}

func TestCacheKey(t *testing.T) {
	base := TaskRequest{
		TaskText:   "llamar al banco",
		Categories: []CategoryContext{{Name: "Casa", ContextHint: "hogar", Keywords: []string{"banco"}}},
	}

	assert.Equal(t, cacheKey(base), cacheKey(base))

	padded := base
	padded.TaskText = "  llamar al banco "
	assert.Equal(t, cacheKey(base), cacheKey(padded), "surrounding whitespace is ignored")

	otherText := base
	otherText.TaskText = "llamar al médico"
	assert.NotEqual(t, cacheKey(base), cacheKey(otherText))

	otherHint := base
	otherHint.Categories = []CategoryContext{{Name: "Casa", ContextHint: "familia", Keywords: []string{"banco"}}}
	assert.NotEqual(t, cacheKey(base), cacheKey(otherHint))

	otherKeywords := base
	otherKeywords.Categories = []CategoryContext{{Name: "Casa", ContextHint: "hogar"}}
	assert.NotEqual(t, cacheKey(base), cacheKey(otherKeywords))
}
