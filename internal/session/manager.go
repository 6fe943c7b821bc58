package session

import (
	"context"
	"strings"

	"fisiomaster-admin/internal/platform/logger"
	"fisiomaster-admin/internal/ports/backend"
)

// API son las llamadas de auth que el manager necesita del backend.
type API interface {
	Register(ctx context.Context, name, email, password string) (Session, error)
	Login(ctx context.Context, email, password string) (Session, error)
}

// Manager es el dueño único de la sesión: login/register/logout y el
// contrato read/write/clear sobre el slot durable. Implementa
// backend.CredentialProvider y backend.SessionPurger, así los resource
// clients reciben la credencial por inyección en vez de leer storage
// compartido por su cuenta.
type Manager struct {
	api   API
	store Store
	log   logger.Logger
}

func NewManager(api API, store Store, log logger.Logger) *Manager {
	return &Manager{api: api, store: store, log: log}
}

// Register crea la cuenta y persiste la sesión resultante.
func (m *Manager) Register(ctx context.Context, name, email, password string) (Session, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return Session{}, backend.Wrap(backend.ErrValidation, "Por favor, preencha todos os campos")
	}

	sess, err := m.api.Register(ctx, name, email, password)
	if err != nil {
		return Session{}, err
	}
	if err := m.store.Save(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Login autentica y persiste la sesión.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return Session{}, backend.Wrap(backend.ErrValidation, "Por favor, preencha todos os campos")
	}

	sess, err := m.api.Login(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	if err := m.store.Save(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Logout limpia el slot incondicionalmente y nunca falla: una limpieza
// total es más segura que un borrado parcial que deje una credencial
// huérfana fallando a mitad de un request.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil && m.log != nil {
		m.log.Warn("logout: clear session", map[string]any{"error": err.Error()})
	}
}

// Current lee la sesión del slot durable. Un valor no parseable o un token
// que no sea un JWT de tres segmentos se trata como sesión corrupta: se
// purga y se reporta ausente, sin propagar el error.
func (m *Manager) Current() (Session, bool) {
	sess, ok, err := m.store.Load()
	if err != nil {
		if m.log != nil {
			m.log.Warn("session corrupta, purgando", map[string]any{"error": err.Error()})
		}
		_ = m.store.Clear()
		return Session{}, false
	}
	if !ok {
		return Session{}, false
	}
	if !WellFormedToken(sess.Token) {
		if m.log != nil {
			m.log.Warn("token mal formado, purgando session", nil)
		}
		_ = m.store.Clear()
		return Session{}, false
	}
	return sess, true
}

// Token implementa backend.CredentialProvider.
func (m *Manager) Token(_ context.Context) (string, error) {
	sess, ok := m.Current()
	if !ok {
		return "", backend.Wrap(backend.ErrAuth, "Sessão expirada. Faça login novamente.")
	}
	return sess.Token, nil
}

// Purge implementa backend.SessionPurger.
func (m *Manager) Purge() error {
	return m.store.Clear()
}
