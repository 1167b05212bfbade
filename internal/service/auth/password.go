package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher defines the interface for hashing and comparing passwords.
type PasswordHasher interface {
	// Hash returns a salted one-way digest of the plaintext password.
	// Repeated calls with the same plaintext produce different digests.
	Hash(password string) (string, error)

	// Compare compares a hashed password with its possible plaintext
	// equivalent. Returns nil on success, or an error on failure
	// (mismatch or malformed digest). It never panics.
	Compare(hashedPassword, password string) error
}

// BcryptHasher implements PasswordHasher using bcrypt. The digest embeds the
// salt and cost, so Compare needs no external parameters and runs in time
// proportional to the embedded cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a new BcryptHasher with the given work factor.
// Costs outside bcrypt's supported range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash implements the PasswordHasher interface using bcrypt.
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare implements the PasswordHasher interface using bcrypt.
// bcrypt's comparison is constant-time with respect to the digest.
func (h *BcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
