package backend

import "context"

// CredentialProvider entrega el token de la sesión vigente.
// Debe retornar un error con Kind ErrAuth cuando no hay sesión, para que el
// resource client falle rápido sin gastar el round-trip.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// SessionPurger permite al resource client purgar la sesión cuando el
// backend rechaza la credencial (manejo central de ErrAuth).
type SessionPurger interface {
	Purge() error
}
