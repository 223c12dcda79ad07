package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// ErrInvalidAuthResponse is returned by Login when a 2xx response does not
// carry both a user and an access token.
var ErrInvalidAuthResponse = errors.New("respuesta de autenticación inválida")

// Default messages used when the server omits one.
const (
	MessageBadRequest   = "Datos de solicitud inválidos"
	MessageUnauthorized = "Email o contraseña incorrectos"
	MessageForbidden    = "Usuario inactivo"
)

// Error is a non-2xx response converted to a single human-readable message.
type Error struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// messagePaths are tried in order against a JSON error body.
var messagePaths = []string{"message", "error.message", "error"}

func newError(operation string, statusCode int, body []byte, fallback string) *Error {
	return &Error{
		Operation:  operation,
		StatusCode: statusCode,
		Message:    errorMessage(statusCode, body, fallback),
	}
}

func errorMessage(statusCode int, body []byte, fallback string) string {
	if gjson.ValidBytes(body) {
		for _, path := range messagePaths {
			result := gjson.GetBytes(body, path)
			if result.Type == gjson.String && result.String() != "" {
				return result.String()
			}
		}
	}

	switch statusCode {
	case http.StatusBadRequest:
		return MessageBadRequest
	case http.StatusUnauthorized:
		return MessageUnauthorized
	case http.StatusForbidden:
		return MessageForbidden
	}

	if fallback == "" {
		fallback = "Error en la solicitud"
	}
	return fmt.Sprintf("%s (HTTP %d)", fallback, statusCode)
}

// StatusCode extracts the HTTP status from an *Error anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}
