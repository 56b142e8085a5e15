package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type EnrollRequest struct {
	TorneoID  string `json:"torneo_id"`
	UtenteID  string `json:"utente_id"`
	CreatedAt string `json:"created_at"`
}

func (req *EnrollRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TorneoID, validation.Required, is.UUID),
		validation.Field(&req.UtenteID, validation.Required, is.UUID),
	)
}

// EnrolledAt parses the optional client timestamp, defaulting to now.
func (req *EnrollRequest) EnrolledAt() time.Time {
	if req.CreatedAt == "" {
		return time.Now()
	}

	parsed, err := time.Parse(time.RFC3339, req.CreatedAt)
	if err != nil {
		return time.Now()
	}

	return parsed
}
