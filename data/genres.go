package data

import "athenaeum/internal/validator"

// Genre defines a genre model, identified by a unique name.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func ValidateGenre(v *validator.Validator, genre *Genre) {
	v.Check(genre.Name != "", "name", "must be provided")
	v.Check(len(genre.Name) <= 500, "name", "must not be more than 500 bytes long")
}
