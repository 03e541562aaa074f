package dto

// BorrowBookRequestBody defines the request body for BorrowBook service.
type BorrowBookRequestBody struct {
	BookID string `json:"book_id"`
}

// ReturnBookRequestBody defines the request body for ReturnBook service.
// Username identifies the borrower on whose behalf copies are returned.
type ReturnBookRequestBody struct {
	BookID   string `json:"book_id"`
	Username string `json:"username"`
	Quantity int32  `json:"quantity"`
}
