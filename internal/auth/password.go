package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// GenerateHash returns a salted bcrypt hash of the password.
func GenerateHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ValidateHash reports whether the password matches the stored hash.
// A mismatch is not an error, it is just false.
func ValidateHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
