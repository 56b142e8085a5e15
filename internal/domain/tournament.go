package domain

import (
	"time"

	"github.com/google/uuid"
)

type Tournament struct {
	ID        uuid.UUID `json:"id"`
	Titolo    string    `json:"titolo"`
	Modalita  string    `json:"modalita"`
	Data      string    `json:"data"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
