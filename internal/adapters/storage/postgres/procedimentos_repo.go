package postgres

import (
	"context"
	"database/sql"
	"strings"

	"fisiomaster-admin/internal/domain/procedimentos"
)

type ProcedimentosRepo struct {
	db *sql.DB
}

func NewProcedimentosRepo(db *sql.DB) *ProcedimentosRepo {
	return &ProcedimentosRepo{db: db}
}

func (r *ProcedimentosRepo) Create(ctx context.Context, p procedimentos.Procedimento) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO procedimentos (
			id, nome, descricao, paciente_id, data_realizacao,
			evolucao, plano_saude, valor_plano, valor_fixo
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		p.ID,
		p.Nome,
		p.Descricao,
		p.Paciente.ID,
		p.DataRealizacao,
		p.Evolucao,
		p.PlanoSaude,
		p.ValorPlano,
		p.ValorFixo,
	)
	return err
}

func (r *ProcedimentosRepo) Update(ctx context.Context, p procedimentos.Procedimento) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE procedimentos
		SET
			nome = $2,
			descricao = $3,
			paciente_id = $4,
			data_realizacao = $5,
			evolucao = $6,
			plano_saude = $7,
			valor_plano = $8,
			valor_fixo = $9
		WHERE id = $1
	`,
		p.ID,
		p.Nome,
		p.Descricao,
		p.Paciente.ID,
		p.DataRealizacao,
		p.Evolucao,
		p.PlanoSaude,
		p.ValorPlano,
		p.ValorFixo,
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

func (r *ProcedimentosRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM procedimentos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProcedimentosRepo) GetByID(ctx context.Context, id string) (procedimentos.Procedimento, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return procedimentos.Procedimento{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, nome, descricao, paciente_id, data_realizacao,
			evolucao, plano_saude, valor_plano, valor_fixo
		FROM procedimentos
		WHERE id = $1
	`, id)

	var p procedimentos.Procedimento
	if err := scanProcedimento(row.Scan, &p); err != nil {
		if err == sql.ErrNoRows {
			return procedimentos.Procedimento{}, ErrNotFound
		}
		return procedimentos.Procedimento{}, err
	}
	return p, nil
}

func (r *ProcedimentosRepo) List(ctx context.Context) ([]procedimentos.Procedimento, error) {
	return r.list(ctx, `
		SELECT
			id, nome, descricao, paciente_id, data_realizacao,
			evolucao, plano_saude, valor_plano, valor_fixo
		FROM procedimentos
		ORDER BY seq ASC
	`)
}

func (r *ProcedimentosRepo) ListByPaciente(ctx context.Context, pacienteID string) ([]procedimentos.Procedimento, error) {
	return r.list(ctx, `
		SELECT
			id, nome, descricao, paciente_id, data_realizacao,
			evolucao, plano_saude, valor_plano, valor_fixo
		FROM procedimentos
		WHERE paciente_id = $1
		ORDER BY seq ASC
	`, pacienteID)
}

func (r *ProcedimentosRepo) list(ctx context.Context, query string, args ...any) ([]procedimentos.Procedimento, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]procedimentos.Procedimento, 0)
	for rows.Next() {
		var p procedimentos.Procedimento
		if err := scanProcedimento(rows.Scan, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProcedimento(scan func(dest ...any) error, p *procedimentos.Procedimento) error {
	return scan(
		&p.ID,
		&p.Nome,
		&p.Descricao,
		&p.Paciente.ID,
		&p.DataRealizacao,
		&p.Evolucao,
		&p.PlanoSaude,
		&p.ValorPlano,
		&p.ValorFixo,
	)
}
