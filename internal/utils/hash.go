package utils

import "golang.org/x/crypto/bcrypt"

// hashCost trades roughly 250ms of CPU per login for resistance to
// offline cracking. Raising it invalidates no stored hashes.
const hashCost = 12

// HashPassword returns the bcrypt hash of pw, salted per call.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), hashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether pw matches the stored hash.
func CheckPassword(hashed, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
