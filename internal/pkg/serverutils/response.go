package serverutils

// APIResponse is the standard envelope for internal/admin endpoints.
// The public chatbot endpoint has its own wire contract and does not use it.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse wraps data in the standard envelope
func SuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// ErrorResponse wraps a failure message in the standard envelope
func ErrorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}
