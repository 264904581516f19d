package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
	issuer           = "voin"
)

// Claims 세션 토큰 페이로드. Subject 가 회원 ID 이다.
type Claims struct {
	jwt.RegisteredClaims
	Nickname  string `json:"nickname,omitempty"`
	TokenType string `json:"typ"`
}

// MemberID returns the subject of the token
func (c *Claims) MemberID() string {
	return c.Subject
}

// Manager issues and verifies HS256 session tokens
type Manager struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewManager creates a new Manager. Expiries are in minutes.
func NewManager(secret string, accessMinutes, refreshMinutes int) *Manager {
	return &Manager{
		secret:        []byte(secret),
		accessExpiry:  time.Duration(accessMinutes) * time.Minute,
		refreshExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

// AccessExpiry returns the access token lifetime
func (m *Manager) AccessExpiry() time.Duration {
	return m.accessExpiry
}

// GenerateAccessToken issues an access token for the member
func (m *Manager) GenerateAccessToken(memberID, nickname string) (string, error) {
	return m.sign(memberID, nickname, tokenTypeAccess, m.accessExpiry)
}

// GenerateRefreshToken issues a refresh token for the member
func (m *Manager) GenerateRefreshToken(memberID string) (string, error) {
	return m.sign(memberID, "", tokenTypeRefresh, m.refreshExpiry)
}

func (m *Manager) sign(memberID, nickname, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   memberID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Nickname:  nickname,
		TokenType: tokenType,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// VerifyToken verifies an access token
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	return m.verify(tokenString, tokenTypeAccess)
}

// VerifyRefreshToken verifies a refresh token
func (m *Manager) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return m.verify(tokenString, tokenTypeRefresh)
}

func (m *Manager) verify(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.TokenType != tokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
