package auth

import "golang.org/x/crypto/bcrypt"

// HashCost matches the cost the rest of the platform uses for account
// secrets. Plaintext passwords must never be stored or logged; they exist
// only between the request decode and this call.
const HashCost = 10

// HashPassword derives the stored secret from a plaintext password.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// bcrypt performs the comparison in constant time.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
