package user

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCreateUserDefaults(t *testing.T) {
	input := CreateUserInput{Username: "alice", Password: "hunter22!"}
	_, err := CreateUser(input, nil, nil)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	_, err = CreateUser(input, nil, func() (string, error) { return "", errors.New("id generator error") })
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestCreateUserNormalizesInput(t *testing.T) {
	fixedTime := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	input := CreateUserInput{Username: "  Alice  ", Password: "hunter22!"}

	created, err := CreateUser(input, func() time.Time { return fixedTime }, func() (string, error) {
		return "user-123", nil
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if created.ID != "user-123" {
		t.Fatalf("expected id user-123, got %q", created.ID)
	}
	if created.Username != "alice" {
		t.Fatalf("expected lowercased trimmed username, got %q", created.Username)
	}
	if created.PasswordHash == "" || created.PasswordHash == input.Password {
		t.Fatalf("expected hashed password, got %q", created.PasswordHash)
	}
	if !created.CreatedAt.Equal(fixedTime) || !created.UpdatedAt.Equal(fixedTime) {
		t.Fatalf("expected timestamps to match fixed time")
	}
}

func TestNormalizeCreateUserInputValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateUserInput
		wantErr error
	}{
		{name: "blank username", input: CreateUserInput{Username: "   ", Password: "hunter22!"}, wantErr: ErrCredentialsRequired},
		{name: "blank password", input: CreateUserInput{Username: "alice", Password: ""}, wantErr: ErrCredentialsRequired},
		{name: "both blank", input: CreateUserInput{}, wantErr: ErrCredentialsRequired},
		{name: "bad username", input: CreateUserInput{Username: "Ali ce", Password: "hunter22!"}, wantErr: ErrInvalidUsername},
		{name: "short password", input: CreateUserInput{Username: "alice", Password: "short"}, wantErr: ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeCreateUserInput(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateUsernameFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "valid lowercase", input: "alice", wantErr: nil},
		{name: "valid with dots", input: "alice.b", wantErr: nil},
		{name: "valid with dashes", input: "alice-b", wantErr: nil},
		{name: "valid with underscores", input: "alice_b", wantErr: nil},
		{name: "valid with numbers", input: "alice123", wantErr: nil},
		{name: "valid min length", input: "abc", wantErr: nil},
		{name: "valid max length", input: "abcdefghijklmnopqrstuvwxyz012345", wantErr: nil},
		{name: "too short", input: "ab", wantErr: ErrInvalidUsername},
		{name: "too long", input: "abcdefghijklmnopqrstuvwxyz0123456", wantErr: ErrInvalidUsername},
		{name: "uppercase", input: "Alice", wantErr: ErrInvalidUsername},
		{name: "spaces", input: "ali ce", wantErr: ErrInvalidUsername},
		{name: "special chars", input: "ali@ce", wantErr: ErrInvalidUsername},
		{name: "empty", input: "", wantErr: ErrInvalidUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter22!")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !VerifyPassword(hash, "hunter22!") {
		t.Fatal("expected matching password to verify")
	}
	if VerifyPassword(hash, "wrong-password") {
		t.Fatal("expected mismatched password to fail")
	}
	if VerifyPassword("not-a-hash", "hunter22!") {
		t.Fatal("expected invalid hash to fail")
	}
}

func TestPasswordCapTreatsOverlongInputsConsistently(t *testing.T) {
	base := strings.Repeat("a", 72)
	hash, err := HashPassword(base + "tail-that-is-ignored")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !VerifyPassword(hash, base) {
		t.Fatal("expected first 72 bytes to be the effective password")
	}
	if !VerifyPassword(hash, base+"different-tail") {
		t.Fatal("expected bytes past the cap to be ignored")
	}
	if VerifyPassword(hash, strings.Repeat("b", 72)) {
		t.Fatal("expected different capped password to fail")
	}
}
