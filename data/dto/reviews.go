package dto

// CreateReviewRequestBody defines a request body for AddReview service.
type CreateReviewRequestBody struct {
	Rating  int8   `json:"rating"`
	Comment string `json:"comment"`
}
