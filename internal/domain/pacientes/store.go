package pacientes

import (
	"context"

	"fisiomaster-admin/internal/adapters/api"
	"fisiomaster-admin/internal/platform/httpclient"
	"fisiomaster-admin/internal/ports/backend"
	"fisiomaster-admin/internal/state"
)

const basePath = "pacientes/"

// NewResource arma el resource client de pacientes.
func NewResource(h *httpclient.Client, creds backend.CredentialProvider, purger backend.SessionPurger) *api.Resource[Paciente] {
	return api.NewResource[Paciente](h, basePath, creds, purger)
}

// Store especializa el store genérico para validar antes de despachar.
type Store struct {
	*state.Store[Paciente]
}

func NewStore(client state.Client[Paciente]) *Store {
	return &Store{Store: state.NewStore(client)}
}

func (s *Store) Create(ctx context.Context, p Paciente) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.Store.Create(ctx, p)
}

func (s *Store) Update(ctx context.Context, id string, p Paciente) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.Store.Update(ctx, id, p)
}
