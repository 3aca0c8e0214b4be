package dto

// Envelope is the uniform response body: {success, message, data}.
// Handlers never emit anything else; clients unwrap Data and surface
// Message on failure.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK wraps a payload in a successful envelope.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMessage wraps a payload with a human-readable message.
func OKMessage(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}
