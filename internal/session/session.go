package session

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Session es la identidad autenticada más la credencial que se adjunta a
// cada request. Es lo que se persiste en el slot durable (el análogo del
// localStorage del cliente web original).
type Session struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Store es el slot durable con nombre fijo que guarda la sesión.
// ok=false en Load significa ausente (no es error).
type Store interface {
	Load() (Session, bool, error)
	Save(s Session) error
	Clear() error
}

// WellFormedToken valida la forma del token sin verificar la firma:
// tres segmentos separados por punto y header/claims decodificables.
// Cualquier otra forma se trata como sesión corrupta y fuerza purge.
func WellFormedToken(tok string) bool {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return false
	}
	if strings.Count(tok, ".") != 2 {
		return false
	}
	_, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	return err == nil
}
