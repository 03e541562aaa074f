package data

import "athenaeum/internal/validator"

// Author defines an author model. Authors are pure reference data,
// identified by a unique name.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func ValidateAuthor(v *validator.Validator, author *Author) {
	v.Check(author.Name != "", "name", "must be provided")
	v.Check(len(author.Name) <= 500, "name", "must not be more than 500 bytes long")
}
