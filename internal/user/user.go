// Package user provides account identity and credential management.
package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/trothapp/troth/internal/platform/errors"
	"github.com/trothapp/troth/internal/platform/id"
)

// bcrypt ignores everything past 72 bytes; longer passwords are capped so
// hashing and verification agree on the effective input.
const maxPasswordBytes = 72

// MinPasswordLength is the minimum accepted password length in bytes.
const MinPasswordLength = 8

var (
	// ErrCredentialsRequired indicates a blank username or password.
	ErrCredentialsRequired = apperrors.New(apperrors.CodeUserCredentialsRequired, "username and password are required")
	// ErrInvalidUsername indicates a username that does not match the required format.
	ErrInvalidUsername = apperrors.New(apperrors.CodeUserUsernameInvalid, "username must be 3-32 lowercase alphanumeric, dot, dash, or underscore characters")
	// ErrPasswordTooShort indicates a password below the minimum length.
	ErrPasswordTooShort = apperrors.New(apperrors.CodeUserPasswordTooShort, "password must be at least 8 characters")
	// ErrAlreadyExists indicates the username is taken.
	ErrAlreadyExists = apperrors.New(apperrors.CodeUserAlreadyExists, "username already exists")
	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = apperrors.New(apperrors.CodeUserInvalidCredentials, "invalid credentials")

	usernamePattern = regexp.MustCompile(`^[a-z0-9_.\-]{3,32}$`)
)

// User represents an account record.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUserInput describes the data needed to create an account.
type CreateUserInput struct {
	Username string
	Password string
}

// ValidateUsername enforces canonical username constraints.
func ValidateUsername(s string) error {
	if !usernamePattern.MatchString(s) {
		return ErrInvalidUsername
	}
	return nil
}

// CreateUser creates a durable account from untrusted signup input.
//
// This is the canonical point where form data becomes a stable identity:
// the username is normalized and validated, the password becomes a bcrypt
// hash, and the record is stamped with an ID and timestamps.
func CreateUser(input CreateUserInput, now func() time.Time, idGenerator func() (string, error)) (User, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateUserInput(input)
	if err != nil {
		return User{}, err
	}

	hash, err := HashPassword(normalized.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	userID, err := idGenerator()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}

	createdAt := now().UTC()
	return User{
		ID:           userID,
		Username:     normalized.Username,
		PasswordHash: hash,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, nil
}

// NormalizeCreateUserInput trims and normalizes input before validation.
func NormalizeCreateUserInput(input CreateUserInput) (CreateUserInput, error) {
	input.Username = strings.ToLower(strings.TrimSpace(input.Username))
	if input.Username == "" || input.Password == "" {
		return CreateUserInput{}, ErrCredentialsRequired
	}
	if err := ValidateUsername(input.Username); err != nil {
		return CreateUserInput{}, err
	}
	if len(input.Password) < MinPasswordLength {
		return CreateUserInput{}, ErrPasswordTooShort
	}
	return input, nil
}

// HashPassword returns the bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(capPassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored hash.
func VerifyPassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), capPassword(password)) == nil
}

func capPassword(password string) []byte {
	raw := []byte(password)
	if len(raw) > maxPasswordBytes {
		raw = raw[:maxPasswordBytes]
	}
	return raw
}
