package dto

type ErrorResponse struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	DB      string `json:"db,omitempty"`
}
