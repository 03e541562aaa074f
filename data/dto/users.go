package dto

// RegisterUserRequestBody defines a request body for RegisterUser service.
type RegisterUserRequestBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ActivateUserRequestBody defines a request body for ActivateUser service.
type ActivateUserRequestBody struct {
	TokenPlaintext string `json:"token"`
}

// ResetUserPasswordRequestBody defines a request body for ResetUserPassword service.
type ResetUserPasswordRequestBody struct {
	Password       string `json:"password"`
	TokenPlaintext string `json:"token"`
}
