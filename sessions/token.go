package sessions

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// DemoTokenPrefix starts every locally minted demo token: "demo-token-<unix ms>".
const DemoTokenPrefix = "demo-token-"

// TokenInfo is what can be learned from a token without verifying it.
type TokenInfo struct {
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
	Malformed bool
}

// ClassifyToken reports the kind of token.
func ClassifyToken(token string) TokenKind {
	if strings.HasPrefix(token, DemoTokenPrefix) {
		return KindDemo
	}
	return KindBearerJWT
}

// NewDemoToken mints a demo token stamped with t.
func NewDemoToken(t time.Time) string {
	return DemoTokenPrefix + strconv.FormatInt(t.UnixMilli(), 10)
}

// InspectToken decodes the timestamps of a token. Signed tokens are decoded without any signature
// check: the backend is the only party that verifies them.
func InspectToken(token string, demoLifetime time.Duration) TokenInfo {
	if ClassifyToken(token) == KindDemo {
		return inspectDemoToken(token, demoLifetime)
	}
	return inspectSignedToken(token)
}

func inspectDemoToken(token string, lifetime time.Duration) TokenInfo {
	info := TokenInfo{Kind: KindDemo}
	ms, ok := leadingInt(strings.TrimPrefix(token, DemoTokenPrefix))
	if !ok {
		// No timestamp: the token never expires.
		return info
	}
	info.IssuedAt = time.UnixMilli(ms)
	info.ExpiresAt = info.IssuedAt.Add(lifetime)
	return info
}

// leadingInt parses the leading decimal digits of s.
func leadingInt(s string) (int64, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// inspectSignedToken reads the claims from the payload segment alone. The header and signature
// segments are never looked at.
func inspectSignedToken(token string) TokenInfo {
	info := TokenInfo{Kind: KindBearerJWT}

	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		info.Malformed = true
		return info
	}
	payload, err := jwtlib.NewParser(jwtlib.WithPaddingAllowed()).DecodeSegment(parts[1])
	if err != nil {
		info.Malformed = true
		return info
	}
	claims := jwtlib.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		info.Malformed = true
		return info
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		info.Malformed = true
		return info
	}
	// exp of zero is treated as absent.
	if exp != nil && exp.Unix() > 0 {
		info.ExpiresAt = exp.Time
	}

	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	return info
}

// expired applies the expiry rule for the token kind at now.
func (i TokenInfo) expired(now time.Time, failClosed bool) bool {
	if i.Malformed {
		return failClosed
	}
	if i.ExpiresAt.IsZero() {
		return false
	}
	switch i.Kind {
	case KindDemo:
		// strictly older than the lifetime
		return now.Sub(i.ExpiresAt) > 0
	default:
		// exp is whole seconds and expires once it is behind the current second
		return i.ExpiresAt.Unix() < now.Unix()
	}
}
