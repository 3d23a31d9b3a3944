package user

import (
	"time"

	domain "loanlink-backend/internal/domain/user"
)

type UserDTO struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	PhotoURL        string     `json:"photoURL,omitempty"`
	Role            string     `json:"role"`
	Status          string     `json:"status"`
	SuspendReason   string     `json:"suspendReason,omitempty"`
	SuspendFeedback string     `json:"suspendFeedback,omitempty"`
	SuspendedAt     *time.Time `json:"suspendedAt,omitempty"`
	SuspendUntil    *time.Time `json:"suspendUntil,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// ToDTO never exposes the password hash.
func ToDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		PhotoURL:        u.PhotoURL,
		Role:            string(u.Role),
		Status:          string(u.Status),
		SuspendReason:   u.SuspendReason,
		SuspendFeedback: u.SuspendFeedback,
		SuspendedAt:     u.SuspendedAt,
		SuspendUntil:    u.SuspendUntil,
		CreatedAt:       u.CreatedAt,
	}
}

func toDTOs(us []domain.User) []UserDTO {
	out := make([]UserDTO, 0, len(us))
	for i := range us {
		out = append(out, ToDTO(&us[i]))
	}
	return out
}

// ProfileInput: nil fields are left unchanged.
type ProfileInput struct {
	Name     *string
	PhotoURL *string
}

// SuspendInput: DurationMinutes <= 0 suspends indefinitely.
type SuspendInput struct {
	Reason          string
	Feedback        string
	DurationMinutes int
}
