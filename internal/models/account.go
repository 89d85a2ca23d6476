package models

// Account is one row of the shared account table.
type Account struct {
	Identity     string
	PasswordHash string
	CreatedAt    string
}
