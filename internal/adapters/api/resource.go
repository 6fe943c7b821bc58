package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"fisiomaster-admin/internal/platform/httpclient"
	"fisiomaster-admin/internal/ports/backend"
)

// Entity es lo mínimo que el resource client necesita de un recurso.
type Entity interface {
	EntityID() string
}

// Resource es el adapter de red genérico por tipo de recurso: traduce
// list/get/create/update/delete a llamadas HTTP contra basePath, adjuntando
// la credencial de la sesión vigente. Sin sesión, falla rápido con ErrAuth
// antes de tocar la red.
type Resource[T Entity] struct {
	http     *httpclient.Client
	basePath string // con slash final, p.ej. "pacientes/"
	creds    backend.CredentialProvider
	purger   backend.SessionPurger // opcional; purga la sesión ante 401/403
}

func NewResource[T Entity](h *httpclient.Client, basePath string, creds backend.CredentialProvider, purger backend.SessionPurger) *Resource[T] {
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return &Resource[T]{
		http:     h,
		basePath: basePath,
		creds:    creds,
		purger:   purger,
	}
}

// deleteEcho es la confirmación que el backend devuelve en DELETE.
type deleteEcho struct {
	ID string `json:"id"`
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	headers, err := r.authHeaders(ctx)
	if err != nil {
		return nil, err
	}

	var out []T
	if err := r.http.DoJSON(ctx, http.MethodGet, r.basePath, headers, nil, &out); err != nil {
		return nil, r.mapped(err)
	}
	return out, nil
}

// ListBy lista por relación, p.ej. rel = "paciente/"+id.
func (r *Resource[T]) ListBy(ctx context.Context, rel string) ([]T, error) {
	if strings.TrimSpace(rel) == "" {
		return nil, backend.Wrap(backend.ErrValidation, "Identificador obrigatório")
	}
	headers, err := r.authHeaders(ctx)
	if err != nil {
		return nil, err
	}

	var out []T
	if err := r.http.DoJSON(ctx, http.MethodGet, r.basePath+rel, headers, nil, &out); err != nil {
		return nil, r.mapped(err)
	}
	return out, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if strings.TrimSpace(id) == "" {
		return zero, backend.Wrap(backend.ErrValidation, "Identificador obrigatório")
	}
	headers, err := r.authHeaders(ctx)
	if err != nil {
		return zero, err
	}

	var out T
	if err := r.http.DoJSON(ctx, http.MethodGet, r.basePath+id, headers, nil, &out); err != nil {
		return zero, r.mapped(err)
	}
	return out, nil
}

func (r *Resource[T]) Create(ctx context.Context, data T) (T, error) {
	var zero T
	headers, err := r.authHeaders(ctx)
	if err != nil {
		return zero, err
	}

	var out T
	if err := r.http.DoJSON(ctx, http.MethodPost, r.basePath, headers, data, &out); err != nil {
		return zero, r.mapped(err)
	}
	return out, nil
}

// Update reemplaza los campos editables completos (PUT).
func (r *Resource[T]) Update(ctx context.Context, id string, data T) (T, error) {
	var zero T
	if strings.TrimSpace(id) == "" {
		return zero, backend.Wrap(backend.ErrValidation, "Identificador obrigatório")
	}
	headers, err := r.authHeaders(ctx)
	if err != nil {
		return zero, err
	}

	var out T
	if err := r.http.DoJSON(ctx, http.MethodPut, r.basePath+id, headers, data, &out); err != nil {
		return zero, r.mapped(err)
	}
	return out, nil
}

// Delete retorna el id que el backend confirma haber borrado.
func (r *Resource[T]) Delete(ctx context.Context, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", backend.Wrap(backend.ErrValidation, "Identificador obrigatório")
	}
	headers, err := r.authHeaders(ctx)
	if err != nil {
		return "", err
	}

	var echo deleteEcho
	if err := r.http.DoJSON(ctx, http.MethodDelete, r.basePath+id, headers, nil, &echo); err != nil {
		return "", r.mapped(err)
	}
	if echo.ID == "" {
		// Backend viejo que no ecoa: asumimos el id pedido.
		echo.ID = id
	}
	return echo.ID, nil
}

func (r *Resource[T]) authHeaders(ctx context.Context) (map[string]string, error) {
	tok, err := r.creds.Token(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]string{"Authorization": "Bearer " + tok}, nil
}

// mapped traduce el error y, si el backend rechazó la credencial, purga la
// sesión (manejo central de ErrAuth: purge + redirect al login en la vista).
func (r *Resource[T]) mapped(err error) error {
	out := MapError(err)
	if errors.Is(out, backend.ErrAuth) && r.purger != nil {
		_ = r.purger.Purge()
	}
	return out
}
