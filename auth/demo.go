package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DemoCredentials is the offline fallback account. Only the bcrypt hash of the password is kept.
type DemoCredentials struct {
	username     string
	passwordHash string
}

// NewDemoCredentials hashes password for later comparison.
func NewDemoCredentials(username, password string) (*DemoCredentials, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("demo username and password are required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("HashPassword: %w", err)
	}
	return &DemoCredentials{username: username, passwordHash: hash}, nil
}

func (d *DemoCredentials) Username() string {
	return d.username
}

// Match reports whether username and password are the demo account's.
func (d *DemoCredentials) Match(username, password string) bool {
	if d == nil || username != d.username {
		return false
	}
	return CheckPasswordHash(password, d.passwordHash)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
