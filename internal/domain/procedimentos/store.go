package procedimentos

import (
	"context"

	"fisiomaster-admin/internal/adapters/api"
	"fisiomaster-admin/internal/platform/httpclient"
	"fisiomaster-admin/internal/ports/backend"
	"fisiomaster-admin/internal/state"
)

const basePath = "procedimentos/"

func NewResource(h *httpclient.Client, creds backend.CredentialProvider, purger backend.SessionPurger) *api.Resource[Procedimento] {
	return api.NewResource[Procedimento](h, basePath, creds, purger)
}

type Store struct {
	*state.Store[Procedimento]
}

func NewStore(client state.Client[Procedimento]) *Store {
	return &Store{Store: state.NewStore(client)}
}

// ListByPaciente carga los procedimentos de un paciente; reemplaza la
// colección completa igual que un list normal.
func (s *Store) ListByPaciente(ctx context.Context, pacienteID string) error {
	return s.Store.ListBy(ctx, "paciente/"+pacienteID)
}

func (s *Store) Create(ctx context.Context, p Procedimento) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.Store.Create(ctx, p)
}

func (s *Store) Update(ctx context.Context, id string, p Procedimento) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.Store.Update(ctx, id, p)
}
