package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participation links a user to a tournament. Punteggio is a snapshot of the
// user's total score at enrollment time and is never updated afterwards.
type Participation struct {
	ID        uuid.UUID `json:"id"`
	TorneoID  uuid.UUID `json:"torneo_id"`
	UtenteID  uuid.UUID `json:"utente_id"`
	Punteggio int       `json:"punteggio"`
	Game1     int       `json:"game1"`
	Game2     int       `json:"game2"`
	Game3     int       `json:"game3"`
	Game4     int       `json:"game4"`
	CreatedAt time.Time `json:"created_at"`
}

// Participant is a participation row joined with the user for display.
type Participant struct {
	PartecipazioneID uuid.UUID `json:"partecipazione_id"`
	UtenteID         uuid.UUID `json:"utente_id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Punteggio        int       `json:"punteggio"`
}
