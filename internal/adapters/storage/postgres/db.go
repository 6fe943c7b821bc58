package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para el devserver
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema crea las tablas del devserver si no existen. Las fechas se
// guardan como TEXT yyyy-MM-dd, igual que viajan por el wire.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS pacientes (
			id                 TEXT PRIMARY KEY,
			nome               TEXT NOT NULL,
			data_nascimento    TEXT NOT NULL DEFAULT '',
			telefone           TEXT NOT NULL DEFAULT '',
			email              TEXT NOT NULL DEFAULT '',
			endereco           TEXT NOT NULL DEFAULT '',
			plano_saude        TEXT NOT NULL DEFAULT '',
			numero_carteirinha TEXT NOT NULL DEFAULT '',
			observacoes        TEXT NOT NULL DEFAULT '',
			seq                BIGSERIAL
		)`,
		`CREATE TABLE IF NOT EXISTS procedimentos (
			id              TEXT PRIMARY KEY,
			nome            TEXT NOT NULL,
			descricao       TEXT NOT NULL DEFAULT '',
			paciente_id     TEXT NOT NULL,
			data_realizacao TEXT NOT NULL DEFAULT '',
			evolucao        TEXT NOT NULL DEFAULT '',
			plano_saude     TEXT NOT NULL DEFAULT '',
			valor_plano     NUMERIC(12,2) NOT NULL DEFAULT 0,
			valor_fixo      NUMERIC(12,2) NOT NULL DEFAULT 0,
			seq             BIGSERIAL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
