package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// dummyHash is compared against when a login names an unknown email, so both
// failure paths spend the same bcrypt time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("mindful-dummy-password"), bcrypt.DefaultCost)

// BurnPasswordCheck performs a throwaway comparison.
func BurnPasswordCheck(plain string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
}
