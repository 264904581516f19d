package kakao

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voin/voin-backend/pkg/cache"
)

func newFakeKakao(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json;charset=UTF-8")
		if r.PostForm.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"bad code"}`))
			return
		}
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "http://localhost:3000/auth/kakao/callback", r.PostForm.Get("redirect_uri"))
		_, _ = w.Write([]byte(`{"access_token":"kakao-token","refresh_token":"r","expires_in":21599}`))
	})

	mux.HandleFunc("/v2/user/me", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer kakao-token":
			_, _ = w.Write([]byte(`{
				"id": 12345,
				"properties": {"nickname": "옛닉", "profile_image": "http://k/old.png"},
				"kakao_account": {
					"profile": {"nickname": "보인", "profile_image_url": "http://k/new.png"},
					"email": "a@b.c", "email_needs_agreement": false
				}
			}`))
		case "Bearer legacy-token":
			_, _ = w.Write([]byte(`{"id": 7, "properties": {"nickname": "레거시"}}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":-401,"msg":"this access token does not exist"}`))
		}
	})

	mux.HandleFunc("/v1/user/unlink", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"id": 12345}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost:3000/auth/kakao/callback",
		AuthHost:     srv.URL,
		APIHost:      srv.URL + "/",
	})
	return srv, client
}

func TestAuthURL(t *testing.T) {
	c := NewClient(Config{ClientID: "cid", RedirectURI: "http://localhost/cb"})

	u, err := url.Parse(c.AuthURL("xyz", true))
	require.NoError(t, err)
	assert.Equal(t, "kauth.kakao.com", u.Host)
	assert.Equal(t, "/oauth/authorize", u.Path)
	q := u.Query()
	assert.Equal(t, "cid", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "xyz", q.Get("state"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Equal(t, "http://localhost/cb", q.Get("redirect_uri"))
	assert.Equal(t, "profile_nickname,profile_image", q.Get("scope"))

	u, err = url.Parse(c.AuthURL("", false))
	require.NoError(t, err)
	assert.False(t, u.Query().Has("state"))
	assert.False(t, u.Query().Has("prompt"))
}

func TestExchangeCode(t *testing.T) {
	_, c := newFakeKakao(t)

	tok, err := c.ExchangeCode(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "kakao-token", tok.AccessToken)
	assert.Equal(t, 21599, tok.ExpiresIn)

	assert.Equal(t, "r", tok.RefreshToken)

	_, err = c.ExchangeCode(context.Background(), "bad-code")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestGetProfile(t *testing.T) {
	_, c := newFakeKakao(t)

	p, err := c.GetProfile(context.Background(), "kakao-token")
	require.NoError(t, err)
	assert.Equal(t, "12345", p.ID)
	assert.Equal(t, "보인", p.Nickname)
	assert.Equal(t, "http://k/new.png", p.ProfileImage)
	assert.Equal(t, "a@b.c", p.Email)

	// kakao_account.profile 이 없으면 properties 사용
	p, err = c.GetProfile(context.Background(), "legacy-token")
	require.NoError(t, err)
	assert.Equal(t, "7", p.ID)
	assert.Equal(t, "레거시", p.Nickname)
	assert.Empty(t, p.ProfileImage)

	_, err = c.GetProfile(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestParseProfile_EmailNeedsAgreement(t *testing.T) {
	var raw userMeResponse
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"kakao_account":{"email":"x@y","email_needs_agreement":true}}`), &raw))
	assert.Empty(t, parseProfile(&raw).Email)
}

func TestUnlink(t *testing.T) {
	_, c := newFakeKakao(t)

	id, err := c.Unlink(context.Background(), "kakao-token")
	require.NoError(t, err)
	assert.Equal(t, "12345", id)
}

func TestUpstreamUnavailable(t *testing.T) {
	srv, c := newFakeKakao(t)
	srv.Close()

	_, err := c.GetProfile(context.Background(), "kakao-token")
	assert.ErrorIs(t, err, ErrUpstream)
}

// memoryCache 카카오 프로필 캐시만 구현한 테스트용 캐시
type memoryCache struct {
	cache.Service
	data map[string][]byte
}

func (m *memoryCache) IsAvailable() bool { return true }

func (m *memoryCache) GetKakaoProfile(_ context.Context, key string, dest interface{}) error {
	b, ok := m.data[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(b, dest)
}

func (m *memoryCache) SetKakaoProfile(_ context.Context, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

type countingFetcher struct {
	calls int
}

func (f *countingFetcher) GetProfile(_ context.Context, token string) (*Profile, error) {
	f.calls++
	return &Profile{ID: "1", Nickname: token}, nil
}

func TestCachedProfiles(t *testing.T) {
	fetcher := &countingFetcher{}
	mc := &memoryCache{data: map[string][]byte{}}
	cp := NewCachedProfiles(fetcher, mc)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p, err := cp.GetProfile(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "tok", p.Nickname)
	}
	assert.Equal(t, 1, fetcher.calls)
	assert.Contains(t, mc.data, tokenHash("tok"))
	assert.NotContains(t, mc.data, "tok")

	_, err := cp.GetProfile(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
}

func TestCachedProfiles_WithoutRedis(t *testing.T) {
	fetcher := &countingFetcher{}
	cp := NewCachedProfiles(fetcher, cache.NewService(nil))

	_, _ = cp.GetProfile(context.Background(), "tok")
	_, _ = cp.GetProfile(context.Background(), "tok")
	assert.Equal(t, 2, fetcher.calls)
}

func TestTokenHashStable(t *testing.T) {
	assert.Equal(t, tokenHash("a"), tokenHash("a"))
	assert.Len(t, tokenHash("a"), 64)
}
