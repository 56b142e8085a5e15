package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	Punteggio int       `json:"punteggio"`
	Game1     int       `json:"game1"`
	Game2     int       `json:"game2"`
	Game3     int       `json:"game3"`
	Game4     int       `json:"game4"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Principal is the authenticated identity carried by a verified token.
type Principal struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

// ComputeScore is the total of the four per-game scores. Callers treat an
// absent game value as 0 before calling.
func ComputeScore(game1, game2, game3, game4 int) int {
	return game1 + game2 + game3 + game4
}
