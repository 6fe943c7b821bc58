package backend

import (
	"errors"
	"fmt"
)

// Taxonomía de errores del cliente. Los adapters mapean respuestas del
// backend / fallas de transporte a estos sentinels; las capas de arriba
// deciden por sentinel, nunca por texto.
var (
	// ErrAuth: credencial ausente, inválida o expirada. Al detectarlo se
	// purga la sesión y la vista redirige al login.
	ErrAuth = errors.New("unauthorized")

	// ErrValidation: campos requeridos ausentes. Se resuelve del lado del
	// cliente, nunca llega a la red.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound: el backend respondió 404.
	ErrNotFound = errors.New("not found")

	// ErrCorruptSession: la sesión persistida no parsea o el token no tiene
	// la forma de tres segmentos. Se captura internamente: purge + ausente.
	ErrCorruptSession = errors.New("corrupt session")
)

// NetworkError envuelve una falla de transporte (conexión, timeout).
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	if e.Cause == nil {
		return "network error"
	}
	return fmt.Sprintf("network error: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error { return e.Cause }

// Error agrega a un sentinel el mensaje normalizado para mostrar:
// preferimos el campo "message" del backend; si no hay, el texto genérico
// del error de transporte.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error { return e.Kind }

// Wrap construye un *Error; con message vacío se usa el texto del sentinel.
func Wrap(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// MessageOf extrae el texto a mostrar de cualquier error de operación.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var be *Error
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return err.Error()
}
