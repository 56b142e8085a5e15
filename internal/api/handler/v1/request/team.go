package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

var errInvalidParticipantID = errors.New("participants must be valid UUIDs")

type CreateTeamRequest struct {
	Name            string   `json:"name"`
	Score           int      `json:"score"`
	NumParticipants int      `json:"num_participants"`
	Participants    []string `json:"participants"`
}

func (req *CreateTeamRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Score, validation.Min(0)),
		validation.Field(&req.NumParticipants, validation.Min(0)),
	); err != nil {
		return err
	}

	for _, id := range req.Participants {
		if _, err := uuid.Parse(id); err != nil {
			return errInvalidParticipantID
		}
	}

	return nil
}

// ParticipantIDs returns the parsed participant ids. Validate must have
// passed first.
func (req *CreateTeamRequest) ParticipantIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(req.Participants))
	for _, id := range req.Participants {
		parsed, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		ids = append(ids, parsed)
	}

	return ids
}
