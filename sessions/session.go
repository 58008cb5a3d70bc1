package sessions

import "time"

// Storage keys shared by every page of the console.
const (
	TokenKey = "adminToken"
	UserKey  = "adminUser"
)

// TokenKind tells demo tokens apart from server issued bearer tokens.
type TokenKind string

const (
	KindDemo      TokenKind = "demo"
	KindBearerJWT TokenKind = "bearer-jwt"
)

// User is the cached profile stored under UserKey.
type User struct {
	Username  string    `json:"username"`
	Role      string    `json:"role,omitempty"`
	IsDemo    bool      `json:"isDemo,omitempty"`
	LoginTime time.Time `json:"loginTime,omitzero"`
}

// Session is a read-only view of the stored credentials.
// IssuedAt and ExpiresAt are zero when the token does not carry them.
type Session struct {
	Token     string
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
	User      User
	Malformed bool // the signed token could not be decoded
}
