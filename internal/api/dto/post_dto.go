package dto

// DeleteResponse confirms a post deletion.
type DeleteResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the flat error body used by every failure path.
type ErrorResponse struct {
	Error string `json:"error"`
}
