package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashStaffPIN hashes a staff member's till PIN using bcrypt.
func HashStaffPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckStaffPIN compares a plaintext PIN with a bcrypt hash.
func CheckStaffPIN(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
