package responses

import "fmt"

// Envelope is the JSON body written for every response
type Envelope struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewEnvelope builds the body for status. An empty message selects the
// status default; the data field is set only when payload normalizes to
// something present.
func NewEnvelope(status Status, message string, payload any) Envelope {
	if message == "" {
		message = status.DefaultMessage()
	}

	env := Envelope{
		Status:  status,
		Message: message,
	}
	if data, ok := Normalize(PayloadOf(payload)); ok {
		env.Data = data
	}
	return env
}

// Send writes the envelope for status to the sink and returns the sink's
// result. A status outside the four tags is rejected with ErrUnknownStatus
// and nothing is written.
func Send(s Sink, status Status, message string, payload any) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, string(status))
	}
	return s.WriteJSON(status.Code(), NewEnvelope(status, message, payload))
}

// Success sends a 200 OK response
func Success(s Sink, message string, payload any) error {
	return Send(s, StatusOK, message, payload)
}

// Error sends a 400 Bad Request response
func Error(s Sink, message string, payload any) error {
	return Send(s, StatusError, message, payload)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(s Sink, message string, payload any) error {
	return Send(s, StatusUnauthorized, message, payload)
}

// Forbidden sends a 403 Forbidden response
func Forbidden(s Sink, message string, payload any) error {
	return Send(s, StatusForbidden, message, payload)
}
