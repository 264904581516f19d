package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Redis 없이 동작하는 경우 (nil client)
func TestNilClient(t *testing.T) {
	ctx := context.Background()
	c := NewService(nil)

	assert.False(t, c.IsAvailable())
	assert.Error(t, c.Ping(ctx))

	var dest map[string]string
	assert.ErrorIs(t, c.Get(ctx, "k", &dest), ErrMiss)
	assert.ErrorIs(t, c.GetKakaoProfile(ctx, "hash", &dest), ErrMiss)

	assert.NoError(t, c.Set(ctx, "k", "v", TTLDefault))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "kakao:profile:abc", kakaoKey("abc"))
}
