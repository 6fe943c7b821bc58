package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fisiomaster-admin/internal/ports/backend"
	"fisiomaster-admin/internal/session"
)

// SessionStore persiste la sesión en un archivo JSON con nombre fijo.
// Es el análogo del slot "user" del localStorage del cliente original.
type SessionStore struct {
	path string
}

func NewSessionStore(path string) (*SessionStore, error) {
	if path == "" {
		return nil, errors.New("file: session path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("file: mkdir session dir: %w", err)
	}
	return &SessionStore{path: path}, nil
}

func (s *SessionStore) Load() (session.Session, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return session.Session{}, false, nil
		}
		return session.Session{}, false, fmt.Errorf("file: read session: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Valor no parseable => sesión corrupta. El caller decide purgar.
		return session.Session{}, false, backend.Wrap(backend.ErrCorruptSession, "")
	}
	return sess, true, nil
}

func (s *SessionStore) Save(sess session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("file: marshal session: %w", err)
	}

	// Escritura atómica: tmp + rename, para no dejar un slot a medio
	// escribir que después falle como credencial corrupta.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("file: write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("file: rename session: %w", err)
	}
	return nil
}

// Clear borra el slot. Nunca falla por slot ya vacío.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("file: clear session: %w", err)
	}
	// Limpieza del tmp también, por si quedó colgado de un Save abortado.
	_ = os.Remove(s.path + ".tmp")
	return nil
}
