package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor for new hashes.
var HashCost = bcrypt.DefaultCost

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), HashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// checkPassword reports whether plain matches stored, and whether the match was
// against a legacy plaintext value. Plaintext is only compared when stored is not a bcrypt hash.
func checkPassword(stored, plain string, allowLegacy bool) (ok, legacy bool) {
	if _, err := bcrypt.Cost([]byte(stored)); err == nil {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil, false
	}
	if !allowLegacy || stored == "" {
		return false, false
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1 {
		return true, true
	}
	return false, false
}
