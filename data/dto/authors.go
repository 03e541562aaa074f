package dto

// CreateAuthorRequestBody defines the request body for creating an author.
type CreateAuthorRequestBody struct {
	Name string `json:"name"`
}
