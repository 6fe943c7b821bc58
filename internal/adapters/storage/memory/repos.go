package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"fisiomaster-admin/internal/adapters/storage"
	"fisiomaster-admin/internal/domain/pacientes"
	"fisiomaster-admin/internal/domain/procedimentos"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

// ---------------------------------
// Users
// ---------------------------------

type UsersRepo struct {
	mu      sync.RWMutex
	byEmail map[string]storage.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{byEmail: make(map[string]storage.User)}
}

func (r *UsersRepo) Create(ctx context.Context, u storage.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(u.Email))
	if key == "" {
		return errors.New("user email required")
	}
	if _, exists := r.byEmail[key]; exists {
		return ErrExists
	}
	r.byEmail[key] = u
	return nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (storage.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return storage.User{}, ErrNotFound
	}
	return u, nil
}

// ---------------------------------
// Pacientes
// ---------------------------------

// PacientesRepo preserva el orden de inserción: el cliente muestra la
// colección en el orden que el servidor la entrega.
type PacientesRepo struct {
	mu    sync.RWMutex
	byID  map[string]pacientes.Paciente
	order []string
}

func NewPacientesRepo() *PacientesRepo {
	return &PacientesRepo{byID: make(map[string]pacientes.Paciente)}
}

func (r *PacientesRepo) Create(ctx context.Context, p pacientes.Paciente) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("paciente id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return ErrExists
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *PacientesRepo) Update(ctx context.Context, p pacientes.Paciente) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *PacientesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *PacientesRepo) GetByID(ctx context.Context, id string) (pacientes.Paciente, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pacientes.Paciente{}, ErrNotFound
	}
	return p, nil
}

func (r *PacientesRepo) List(ctx context.Context) ([]pacientes.Paciente, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pacientes.Paciente, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

// ---------------------------------
// Procedimentos
// ---------------------------------

type ProcedimentosRepo struct {
	mu    sync.RWMutex
	byID  map[string]procedimentos.Procedimento
	order []string
}

func NewProcedimentosRepo() *ProcedimentosRepo {
	return &ProcedimentosRepo{byID: make(map[string]procedimentos.Procedimento)}
}

func (r *ProcedimentosRepo) Create(ctx context.Context, p procedimentos.Procedimento) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("procedimento id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return ErrExists
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *ProcedimentosRepo) Update(ctx context.Context, p procedimentos.Procedimento) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *ProcedimentosRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *ProcedimentosRepo) GetByID(ctx context.Context, id string) (procedimentos.Procedimento, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return procedimentos.Procedimento{}, ErrNotFound
	}
	return p, nil
}

func (r *ProcedimentosRepo) List(ctx context.Context) ([]procedimentos.Procedimento, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]procedimentos.Procedimento, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *ProcedimentosRepo) ListByPaciente(ctx context.Context, pacienteID string) ([]procedimentos.Procedimento, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]procedimentos.Procedimento, 0)
	for _, id := range r.order {
		p := r.byID[id]
		if p.Paciente.ID == pacienteID {
			out = append(out, p)
		}
	}
	return out, nil
}
