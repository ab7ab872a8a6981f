package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns passwords into salted one-way hashes and checks
// candidates against stored hashes. Hashing the same password twice yields
// different strings.
type PasswordHasher interface {
	// Hash returns the encoded hash of password.
	Hash(password string) (string, error)

	// Compare reports whether password matches hash. A malformed hash never
	// matches.
	Compare(hash, password string) bool
}
