package helpers

import "golang.org/x/crypto/bcrypt"

// bcryptCost stays at the library default; raise it only together with a
// rehash-on-login strategy.
const bcryptCost = bcrypt.DefaultCost

// HashPassword derives a salted bcrypt digest for storage. The plain
// text never leaves this function.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	return string(b), err
}

// CompareHashAndPassword reports whether plain matches the stored digest.
func CompareHashAndPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
