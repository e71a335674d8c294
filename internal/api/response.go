// File: internal/api/response.go
package api

// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Message string `json:"message" example:"User not found"`
}

// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"User deleted successfully"`
}
