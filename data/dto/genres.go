package dto

// CreateGenreRequestBody defines the request body for creating a genre.
type CreateGenreRequestBody struct {
	Name string `json:"name"`
}
