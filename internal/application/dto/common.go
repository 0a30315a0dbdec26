package dto

// ErrorResponse respuesta de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
