package session

import (
	"time"

	userUC "loanlink-backend/internal/usecase/user"
)

// LoginInput is the identity asserted by the external identity provider.
type LoginInput struct {
	Email    string
	Name     string
	PhotoURL string
	// Role is honoured for new accounts when it is borrower or manager.
	Role string
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	PhotoURL string
	Role     string
}

type AuthResult struct {
	User      userUC.UserDTO
	Token     string
	ExpiresAt time.Time
}
