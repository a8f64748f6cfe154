// Package auth hashes and verifies user passwords.
//
// The stored hash is held by PasswordHash, which has no accessor: the only way
// the hash leaves the type is through driver.Valuer when the store writes it.
package auth

import (
	"crypto/sha256"
	"database/sql/driver"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is hashed for users created without a password.
const DefaultPassword = "defaultpassword"

const redacted = "[REDACTED]"

// bcrypt rejects input longer than this many bytes.
const maxBcryptInput = 72

var compareHash = bcrypt.CompareHashAndPassword

// dummyHash is compared against when there is no stored hash, so a missing
// account costs the same as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("no account has this password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

var (
	// ErrEmptyPassword is returned when hashing an empty or blank password.
	ErrEmptyPassword = errors.New("password is required")
	// ErrWriteOnly is returned by any attempt to read a password hash as a value.
	ErrWriteOnly = errors.New("password hash is write-only")
)

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword(bcryptInput(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// CheckPassword reports whether password matches hash. An empty hash still
// runs a full comparison and never matches.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		CheckDummyPassword(password)
		return false
	}
	return compareHash([]byte(hash), bcryptInput(password)) == nil
}

// CheckDummyPassword spends one bcrypt comparison on password and returns
// false. Call it when the account being logged into does not exist.
func CheckDummyPassword(password string) bool {
	_ = compareHash(dummyHash(), bcryptInput(password))
	return false
}

// bcryptInput returns password as bcrypt input. Passwords longer than bcrypt
// accepts are replaced by their base64 SHA-256 digest.
func bcryptInput(password string) []byte {
	if len(password) <= maxBcryptInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// PasswordHash is a write-only bcrypt hash.
type PasswordHash struct {
	hash string
}

// NewPasswordHash hashes password.
func NewPasswordHash(password string) (PasswordHash, error) {
	h, err := HashPassword(password)
	if err != nil {
		return PasswordHash{}, err
	}
	return PasswordHash{hash: h}, nil
}

// IsSet reports whether a hash has been stored.
func (p PasswordHash) IsSet() bool {
	return p.hash != ""
}

// Verify reports whether password matches the stored hash.
func (p PasswordHash) Verify(password string) bool {
	return CheckPassword(p.hash, password)
}

func (p PasswordHash) String() string   { return redacted }
func (p PasswordHash) GoString() string { return redacted }

// MarshalJSON always fails so the hash can never be serialized.
func (p PasswordHash) MarshalJSON() ([]byte, error) {
	return nil, ErrWriteOnly
}

// MarshalText always fails so the hash can never be serialized.
func (p PasswordHash) MarshalText() ([]byte, error) {
	return nil, ErrWriteOnly
}

// Value implements driver.Valuer for the store.
func (p PasswordHash) Value() (driver.Value, error) {
	return p.hash, nil
}

// Scan implements sql.Scanner for the store.
func (p *PasswordHash) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		p.hash = ""
	case string:
		p.hash = v
	case []byte:
		p.hash = string(v)
	default:
		return fmt.Errorf("auth: cannot scan %T into PasswordHash", src)
	}
	return nil
}
