package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// UpdateUserRequest uses pointers so an absent field leaves the stored value
// unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Game1    *int    `json:"game1"`
	Game2    *int    `json:"game2"`
	Game3    *int    `json:"game3"`
	Game4    *int    `json:"game4"`
	Role     *string `json:"role"`
}

func (req *UpdateUserRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Username, validation.Length(2, 50)),
		validation.Field(&req.Role, validation.In("user", "admin")),
	); err != nil {
		return err
	}

	if req.Password != nil {
		if ok, _ := passwordExp.MatchString(*req.Password); !ok {
			return errInvalidPassword
		}
	}

	return nil
}
