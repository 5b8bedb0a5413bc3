package hash

// Hash hashes secrets and verifies plaintexts against stored hashes.
//
// Passwords, temporary passwords, and one-time password codes all go through
// this interface; only the hash is ever persisted.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}
