package credential

import (
	"unicode/utf8"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const (
	BcryptCost        = 10
	MinPasswordLength = 4
	// bcrypt ignores input beyond 72 bytes.
	MaxPasswordBytes = 72
)

// HashPassword returns a salted bcrypt hash of plain.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches hash. Malformed hashes never match.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ValidatePassword checks a new password and its confirmation.
func ValidatePassword(password, confirm string) error {
	verr := &domain.ValidationError{}
	switch {
	case utf8.RuneCountInString(password) < MinPasswordLength:
		verr.Add(&domain.FieldError{
			Field:   "password",
			Code:    domain.CodeRange,
			Message: "password must be at least 4 characters long",
		})
	case len(password) > MaxPasswordBytes:
		verr.Add(&domain.FieldError{
			Field:   "password",
			Code:    domain.CodeTooLong,
			Message: "password must be at most 72 bytes",
		})
	}
	if confirm != password {
		verr.Add(&domain.FieldError{
			Field:   "confirm",
			Code:    domain.CodeMismatch,
			Message: "passwords must match",
		})
	}
	return verr.OrNil()
}
