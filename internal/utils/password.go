package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext credential with bcrypt at the given
// cost.  The cost comes from configuration; user constructors call this so
// the plaintext never reaches a store.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
// The comparison is constant time; a malformed hash simply fails the
// check.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
