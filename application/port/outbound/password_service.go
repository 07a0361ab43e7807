package outbound

// PasswordService defines the interface for password hashing operations
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) (bool, error)
}
