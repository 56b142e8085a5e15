package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// TournamentForm is the non-file part of the multipart create/update form.
type TournamentForm struct {
	Titolo   string
	Modalita string
	Data     string
}

func (req *TournamentForm) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Titolo, validation.Required),
		validation.Field(&req.Modalita, validation.Required),
		validation.Field(&req.Data, validation.Required),
	)
}
