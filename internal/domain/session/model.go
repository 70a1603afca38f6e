package session

// DemoPassword is the only password the demo accepts for any account.
const DemoPassword = "password"

// LoginRequest describes a sign-in attempt.
type LoginRequest struct {
	Email    string
	Password string
}

// RegisterRequest describes a sign-up form submission.
type RegisterRequest struct {
	Name            string
	Email           string `validate:"required"`
	Password        string `validate:"required"`
	ConfirmPassword string
}
