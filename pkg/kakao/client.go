package kakao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	pkglogger "github.com/voin/voin-backend/pkg/logger"
	"golang.org/x/oauth2"
)

const (
	DefaultAuthHost = "https://kauth.kakao.com"
	DefaultAPIHost  = "https://kapi.kakao.com"

	defaultScope = "profile_nickname,profile_image"
)

// ErrUpstream 카카오 API 호출 실패
var ErrUpstream = errors.New("kakao upstream error")

// Profile 카카오 사용자 정보
type Profile struct {
	ID           string `json:"id"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profile_image"`
	Email        string `json:"email,omitempty"`
}

// Token 인가 코드 교환 결과
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
}

// ProfileFetcher 액세스 토큰으로 프로필 조회
type ProfileFetcher interface {
	GetProfile(ctx context.Context, accessToken string) (*Profile, error)
}

// Config 카카오 앱 설정
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthHost     string
	APIHost      string
}

// Client Kakao OAuth / user API client
type Client struct {
	cfg        Config
	oauth      *oauth2.Config
	httpClient *http.Client
}

// NewClient creates a Kakao client with a 10s timeout
func NewClient(cfg Config) *Client {
	if cfg.AuthHost == "" {
		cfg.AuthHost = DefaultAuthHost
	}
	if cfg.APIHost == "" {
		cfg.APIHost = DefaultAPIHost
	}
	cfg.AuthHost = strings.TrimRight(cfg.AuthHost, "/")
	cfg.APIHost = strings.TrimRight(cfg.APIHost, "/")
	return &Client{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthHost + "/oauth/authorize",
				TokenURL:  cfg.AuthHost + "/oauth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthURL 카카오 인가 URL 생성
func (c *Client) AuthURL(state string, forceConsent bool) string {
	// 카카오는 scope 를 쉼표로 구분한다
	opts := []oauth2.AuthCodeOption{oauth2.SetAuthURLParam("scope", defaultScope)}
	if forceConsent {
		opts = append(opts, oauth2.SetAuthURLParam("prompt", "consent"))
	}
	return c.oauth.AuthCodeURL(state, opts...)
}

// ExchangeCode 인가 코드로 액세스 토큰 교환
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			return nil, fmt.Errorf("%w: token error %s - %s", ErrUpstream, re.ErrorCode, re.ErrorDescription)
		}
		return nil, fmt.Errorf("%w: token exchange: %v", ErrUpstream, err)
	}

	pkglogger.GetLogger().Info().Int("token_len", len(tok.AccessToken)).Msg("kakao token issued")
	return &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresIn:    expiresIn(tok),
	}, nil
}

func expiresIn(tok *oauth2.Token) int {
	if v, ok := tok.Extra("expires_in").(float64); ok {
		return int(v)
	}
	if tok.Expiry.IsZero() {
		return 0
	}
	return int(time.Until(tok.Expiry).Round(time.Second).Seconds())
}

type userMeResponse struct {
	ID         int64 `json:"id"`
	Properties struct {
		Nickname     string `json:"nickname"`
		ProfileImage string `json:"profile_image"`
	} `json:"properties"`
	KakaoAccount struct {
		Profile *struct {
			Nickname        string `json:"nickname"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"profile"`
		Email               string `json:"email"`
		EmailNeedsAgreement bool   `json:"email_needs_agreement"`
	} `json:"kakao_account"`
}

// GetProfile 액세스 토큰으로 사용자 정보 조회
func (c *Client) GetProfile(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIHost+"/v2/user/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	var raw userMeResponse
	if err := c.do(req, &raw); err != nil {
		return nil, err
	}
	if raw.ID == 0 {
		return nil, fmt.Errorf("%w: user id missing", ErrUpstream)
	}
	return parseProfile(&raw), nil
}

// kakao_account.profile 우선, 없으면 legacy properties
func parseProfile(raw *userMeResponse) *Profile {
	p := &Profile{ID: strconv.FormatInt(raw.ID, 10)}
	if prof := raw.KakaoAccount.Profile; prof != nil {
		p.Nickname = prof.Nickname
		p.ProfileImage = prof.ProfileImageURL
	}
	if p.Nickname == "" {
		p.Nickname = raw.Properties.Nickname
	}
	if p.ProfileImage == "" {
		p.ProfileImage = raw.Properties.ProfileImage
	}
	if raw.KakaoAccount.Email != "" && !raw.KakaoAccount.EmailNeedsAgreement {
		p.Email = raw.KakaoAccount.Email
	}
	return p
}

// Unlink 카카오 앱 연결 끊기. 해제된 카카오 회원 ID 반환
func (c *Client) Unlink(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIHost+"/v1/user/unlink", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var raw struct {
		ID int64 `json:"id"`
	}
	if err := c.do(req, &raw); err != nil {
		return "", err
	}
	if raw.ID == 0 {
		return "", fmt.Errorf("%w: unexpected unlink response", ErrUpstream)
	}
	return strconv.FormatInt(raw.ID, 10), nil
}

func (c *Client) do(req *http.Request, dest interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}

	if resp.StatusCode >= 400 {
		pkglogger.GetLogger().Warn().
			Int("status", resp.StatusCode).
			Str("url", req.URL.Path).
			Msg("kakao api error")
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: parse response: %v", ErrUpstream, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
