package response

// Envelope is the error body shape shared by the middleware layer.
type Envelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Error(code, message string, details any) Envelope {
	return Envelope{
		Code:    code,
		Message: message,
		Details: details,
	}
}
