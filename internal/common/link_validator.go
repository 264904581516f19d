package common

import (
	"net"
	"net/url"
	"slices"
	"strings"
)

// MaxImageURLLength profile_image 컬럼 길이
const MaxImageURLLength = 500

// 내부망 주소는 프로필 이미지로 받지 않는다
var blockedImageHosts = []string{
	"localhost",
	"metadata.google.internal",
}

// ValidateImageURL validates a user-supplied profile image URL.
// Relative paths produced by the local image store are accepted as-is.
func ValidateImageURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > MaxImageURLLength {
		return ErrInvalidImageURL
	}

	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidImageURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidImageURL
	}

	host := strings.ToLower(u.Hostname())
	if host == "" || slices.Contains(blockedImageHosts, host) {
		return ErrInvalidImageURL
	}
	if ip := net.ParseIP(host); ip != nil && (ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()) {
		return ErrInvalidImageURL
	}
	return nil
}
