// Package storage define los contratos de persistencia del devserver (el
// stand-in local del backend FisiMaster). Hay dos implementaciones:
// memory (default, para dev y tests) y postgres (via DB_DSN).
package storage

import (
	"context"

	"fisiomaster-admin/internal/domain/pacientes"
	"fisiomaster-admin/internal/domain/procedimentos"
)

// User es la cuenta del profesional que administra el consultorio.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

type UsersRepo interface {
	Create(ctx context.Context, u User) error
	GetByEmail(ctx context.Context, email string) (User, error)
}

type PacientesRepo interface {
	Create(ctx context.Context, p pacientes.Paciente) error
	Update(ctx context.Context, p pacientes.Paciente) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (pacientes.Paciente, error)
	List(ctx context.Context) ([]pacientes.Paciente, error)
}

type ProcedimentosRepo interface {
	Create(ctx context.Context, p procedimentos.Procedimento) error
	Update(ctx context.Context, p procedimentos.Procedimento) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (procedimentos.Procedimento, error)
	List(ctx context.Context) ([]procedimentos.Procedimento, error)
	ListByPaciente(ctx context.Context, pacienteID string) ([]procedimentos.Procedimento, error)
}
