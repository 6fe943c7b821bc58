package postgres

import (
	"context"
	"database/sql"
	"strings"

	"fisiomaster-admin/internal/adapters/storage"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u storage.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
	`,
		u.ID,
		u.Name,
		strings.ToLower(strings.TrimSpace(u.Email)),
		u.PasswordHash,
	)
	if err != nil && strings.Contains(err.Error(), "unique") {
		return ErrExists
	}
	return err
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (storage.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash
		FROM users
		WHERE email = $1
	`, strings.ToLower(strings.TrimSpace(email)))

	var u storage.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			return storage.User{}, ErrNotFound
		}
		return storage.User{}, err
	}
	return u, nil
}
