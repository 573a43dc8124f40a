package model

// User is an operator allowed to sign in to the dashboard.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

// Credentials holds a validated login form.
type Credentials struct {
	Email    string
	Password string
}
