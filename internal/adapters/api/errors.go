package api

import (
	"errors"
	"net/http"

	"fisiomaster-admin/internal/platform/httpclient"
	"fisiomaster-admin/internal/ports/backend"
)

// Texto genérico cuando el backend no manda "message".
const genericNetworkMessage = "Erro de comunicação com o servidor"

// MapError traduce errores del httpclient a la taxonomía del cliente.
// Preferimos el campo "message" del backend; si no viene, caemos al texto
// genérico de transporte (misma cadena de fallback que el cliente web).
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		msg := he.Message()
		switch he.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			if msg == "" {
				msg = "Não autorizado"
			}
			return backend.Wrap(backend.ErrAuth, msg)
		case http.StatusNotFound:
			if msg == "" {
				msg = "Recurso não encontrado"
			}
			return backend.Wrap(backend.ErrNotFound, msg)
		default:
			if msg == "" {
				msg = genericNetworkMessage
			}
			return backend.Wrap(&backend.NetworkError{Cause: he}, msg)
		}
	}

	// Falla de transporte (conexión caída, timeout).
	return backend.Wrap(&backend.NetworkError{Cause: err}, genericNetworkMessage)
}

// mapAuthError es MapError con la semántica de los endpoints de auth:
// ahí un 400/409 significa credenciales malas o email ya registrado, que
// para el cliente es ErrAuth, no un error genérico.
func mapAuthError(err error) error {
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		switch he.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized,
			http.StatusForbidden, http.StatusConflict:
			msg := he.Message()
			if msg == "" {
				msg = "Credenciais inválidas"
			}
			return backend.Wrap(backend.ErrAuth, msg)
		}
	}
	return MapError(err)
}
