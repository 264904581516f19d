package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL 상수 정의
const (
	TTLKakaoProfile = 5 * time.Minute // 카카오 프로필 조회 결과
	TTLDefault      = 5 * time.Minute
)

// 캐시 키 접두사
const (
	PrefixKakao = "kakao:profile:"
)

// ErrMiss 캐시에 값이 없음
var ErrMiss = errors.New("cache miss")

// Service Redis 캐시 서비스 인터페이스
type Service interface {
	// 기본 캐시 연산
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// 카카오 프로필 캐시 (토큰 해시 기준)
	GetKakaoProfile(ctx context.Context, tokenHash string, dest interface{}) error
	SetKakaoProfile(ctx context.Context, tokenHash string, data interface{}) error

	// 유틸리티
	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis 기반 캐시 구현
type redisCache struct {
	client *redis.Client
}

// NewService 새로운 캐시 서비스 생성. client 가 nil 이면 모든 조회는 ErrMiss
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable Redis 연결 가능 여부
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping Redis 연결 테스트
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get 캐시에서 값 조회
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set 캐시에 값 저장
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // Redis 없으면 무시
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// ========================================
// 카카오 프로필 캐시
// ========================================

func kakaoKey(tokenHash string) string {
	return PrefixKakao + tokenHash
}

func (c *redisCache) GetKakaoProfile(ctx context.Context, tokenHash string, dest interface{}) error {
	return c.Get(ctx, kakaoKey(tokenHash), dest)
}

func (c *redisCache) SetKakaoProfile(ctx context.Context, tokenHash string, data interface{}) error {
	return c.Set(ctx, kakaoKey(tokenHash), data, TTLKakaoProfile)
}
