package domain

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Score           int         `json:"score"`
	NumParticipants int         `json:"num_participants"`
	Participants    []uuid.UUID `json:"participants,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// TeamMember is a resolved participant entry on the team detail view.
type TeamMember struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}
