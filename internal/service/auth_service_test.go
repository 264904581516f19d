package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/pkg/jwt"
	"github.com/voin/voin-backend/pkg/kakao"
)

func TestLoginWithToken_NewUser(t *testing.T) {
	env := newTestEnv(t)
	profiles := new(mockProfileFetcher)
	profiles.On("GetProfile", mock.Anything, "tok").Return(kakaoUser("k9", "카카오", "https://k.kakaocdn.net/p.jpg"), nil)
	svc := NewAuthService(new(mockKakaoOAuth), profiles, env.members, env.jwt)

	resp, err := svc.LoginWithToken(t.Context(), "tok")
	require.NoError(t, err)
	assert.True(t, resp.IsNewUser)
	assert.Equal(t, "tok", resp.KakaoAccessToken)
	assert.Equal(t, "카카오", resp.KakaoProfile.Nickname)
	assert.Empty(t, resp.AccessToken)
	assert.Nil(t, resp.Member)
}

func TestLoginWithToken_ExistingMember(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "m1", "보인", "AAAA1111")
	profiles := new(mockProfileFetcher)
	profiles.On("GetProfile", mock.Anything, "tok").Return(kakaoUser(m.KakaoID, "보인", ""), nil)
	svc := NewAuthService(new(mockKakaoOAuth), profiles, env.members, env.jwt)

	resp, err := svc.LoginWithToken(t.Context(), "tok")
	require.NoError(t, err)
	assert.False(t, resp.IsNewUser)
	assert.Equal(t, "m1", resp.Member.ID)

	claims, err := env.jwt.VerifyToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "m1", claims.MemberID())
}

func TestLoginWithToken_ReactivatesMember(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "m1", "보인", "AAAA1111")
	require.NoError(t, env.members.UpdateFields("m1", map[string]interface{}{"is_active": false}))
	profiles := new(mockProfileFetcher)
	profiles.On("GetProfile", mock.Anything, "tok").Return(kakaoUser(m.KakaoID, "보인", ""), nil)
	svc := NewAuthService(new(mockKakaoOAuth), profiles, env.members, env.jwt)

	resp, err := svc.LoginWithToken(t.Context(), "tok")
	require.NoError(t, err)
	assert.True(t, resp.Member.IsActive)

	stored, err := env.members.FindByID("m1")
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
}

func TestLoginWithCode_ExchangeFailure(t *testing.T) {
	env := newTestEnv(t)
	oauth := new(mockKakaoOAuth)
	oauth.On("ExchangeCode", mock.Anything, "bad-code").Return(nil, kakao.ErrUpstream)
	svc := NewAuthService(oauth, new(mockProfileFetcher), env.members, env.jwt)

	_, err := svc.LoginWithCode(t.Context(), "bad-code")
	assert.ErrorIs(t, err, common.ErrKakaoFailure)
	assert.ErrorIs(t, err, kakao.ErrUpstream)
}

func TestLoginWithCode_UsesExchangedToken(t *testing.T) {
	env := newTestEnv(t)
	oauth := new(mockKakaoOAuth)
	oauth.On("ExchangeCode", mock.Anything, "code").Return(&kakao.Token{AccessToken: "exchanged"}, nil)
	profiles := new(mockProfileFetcher)
	profiles.On("GetProfile", mock.Anything, "exchanged").Return(kakaoUser("k1", "카카오", ""), nil)
	svc := NewAuthService(oauth, profiles, env.members, env.jwt)

	resp, err := svc.LoginWithCode(t.Context(), "code")
	require.NoError(t, err)
	assert.True(t, resp.IsNewUser)
	assert.Equal(t, "exchanged", resp.KakaoAccessToken)
	oauth.AssertExpectations(t)
}

func TestRefresh(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, "m1", "보인", "AAAA1111")
	svc := NewAuthService(new(mockKakaoOAuth), new(mockProfileFetcher), env.members, env.jwt)

	refresh, err := env.jwt.GenerateRefreshToken("m1")
	require.NoError(t, err)

	pair, err := svc.Refresh(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// access token 으로는 재발급 불가
	access, err := env.jwt.GenerateAccessToken("m1", "보인")
	require.NoError(t, err)
	_, err = svc.Refresh(access)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = svc.Refresh("garbage")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestRefresh_ExpiredAndInactive(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, "m1", "보인", "AAAA1111")
	svc := NewAuthService(new(mockKakaoOAuth), new(mockProfileFetcher), env.members, env.jwt)

	expired, err := jwt.NewManager("test-secret", 60, -1).GenerateRefreshToken("m1")
	require.NoError(t, err)
	_, err = svc.Refresh(expired)
	assert.ErrorIs(t, err, common.ErrExpiredToken)

	require.NoError(t, env.members.UpdateFields("m1", map[string]interface{}{"is_active": false}))
	refresh, err := env.jwt.GenerateRefreshToken("m1")
	require.NoError(t, err)
	_, err = svc.Refresh(refresh)
	assert.ErrorIs(t, err, common.ErrInactiveMember)
}

func TestAuthURL_Delegates(t *testing.T) {
	env := newTestEnv(t)
	oauth := new(mockKakaoOAuth)
	oauth.On("AuthURL", "state", true).Return("https://kauth.kakao.com/oauth/authorize?x")
	svc := NewAuthService(oauth, new(mockProfileFetcher), env.members, env.jwt)

	assert.Equal(t, "https://kauth.kakao.com/oauth/authorize?x", svc.AuthURL("state", true))
}
