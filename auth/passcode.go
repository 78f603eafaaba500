package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt hashing
const BcryptCost = 12

// ErrPasscodeMismatch is returned when the entered passcode is wrong.
var ErrPasscodeMismatch = errors.New("invalid passcode")

// HashPasscode hashes the shared dashboard passcode using bcrypt. Used by
// the seed script to produce the ADMIN_PASSCODE_HASH value.
func HashPasscode(passcode string) (string, error) {
	if passcode == "" {
		return "", errors.New("passcode must not be empty")
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(passcode), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passcode: %w", err)
	}

	return string(bytes), nil
}

// CheckPasscode compares an entered passcode with the configured hash
func CheckPasscode(passcode, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasscodeMismatch
		}
		return fmt.Errorf("failed to check passcode: %w", err)
	}
	return nil
}
