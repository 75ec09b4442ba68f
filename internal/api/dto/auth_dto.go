package dto

// LoginRequest payload for login.
type LoginRequest struct {
	ID string `json:"id"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}
