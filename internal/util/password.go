package util

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"unicode"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength   = 16
	hashLength   = 32
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4

	MinPasswordLength = 8
)

var ErrWeakPassword = errors.New("password must be at least 8 characters and include a letter and a digit")

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}

// DerivePassword returns an argon2id hash of password with a fresh salt.
func DerivePassword(password string) (hash, salt []byte, err error) {
	if password == "" {
		return nil, nil, errors.New("password cannot be empty")
	}
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, err
	}
	return hashWithSalt(password, salt), salt, nil
}

func VerifyPassword(password string, salt, expectedHash []byte) bool {
	if password == "" || len(salt) == 0 || len(expectedHash) != hashLength {
		return false
	}
	return subtle.ConstantTimeCompare(hashWithSalt(password, salt), expectedHash) == 1
}

func hashWithSalt(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, hashLength)
}
