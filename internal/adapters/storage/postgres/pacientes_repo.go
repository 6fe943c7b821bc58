package postgres

import (
	"context"
	"database/sql"
	"strings"

	"fisiomaster-admin/internal/domain/pacientes"
)

type PacientesRepo struct {
	db *sql.DB
}

func NewPacientesRepo(db *sql.DB) *PacientesRepo {
	return &PacientesRepo{db: db}
}

func (r *PacientesRepo) Create(ctx context.Context, p pacientes.Paciente) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pacientes (
			id, nome, data_nascimento, telefone, email,
			endereco, plano_saude, numero_carteirinha, observacoes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		p.ID,
		p.Nome,
		p.DataNascimento,
		p.Telefone,
		p.Email,
		p.Endereco,
		p.PlanoSaude,
		p.NumeroCarteirinha,
		p.Observacoes,
	)
	return err
}

func (r *PacientesRepo) Update(ctx context.Context, p pacientes.Paciente) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pacientes
		SET
			nome = $2,
			data_nascimento = $3,
			telefone = $4,
			email = $5,
			endereco = $6,
			plano_saude = $7,
			numero_carteirinha = $8,
			observacoes = $9
		WHERE id = $1
	`,
		p.ID,
		p.Nome,
		p.DataNascimento,
		p.Telefone,
		p.Email,
		p.Endereco,
		p.PlanoSaude,
		p.NumeroCarteirinha,
		p.Observacoes,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PacientesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pacientes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PacientesRepo) GetByID(ctx context.Context, id string) (pacientes.Paciente, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pacientes.Paciente{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, nome, data_nascimento, telefone, email,
			endereco, plano_saude, numero_carteirinha, observacoes
		FROM pacientes
		WHERE id = $1
	`, id)

	var p pacientes.Paciente
	if err := scanPaciente(row.Scan, &p); err != nil {
		if err == sql.ErrNoRows {
			return pacientes.Paciente{}, ErrNotFound
		}
		return pacientes.Paciente{}, err
	}
	return p, nil
}

func (r *PacientesRepo) List(ctx context.Context) ([]pacientes.Paciente, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, nome, data_nascimento, telefone, email,
			endereco, plano_saude, numero_carteirinha, observacoes
		FROM pacientes
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pacientes.Paciente, 0)
	for rows.Next() {
		var p pacientes.Paciente
		if err := scanPaciente(rows.Scan, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPaciente(scan func(dest ...any) error, p *pacientes.Paciente) error {
	return scan(
		&p.ID,
		&p.Nome,
		&p.DataNascimento,
		&p.Telefone,
		&p.Email,
		&p.Endereco,
		&p.PlanoSaude,
		&p.NumeroCarteirinha,
		&p.Observacoes,
	)
}
