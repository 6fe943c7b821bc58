package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fisiomaster-admin/internal/adapters/storage"
	"fisiomaster-admin/internal/adapters/storage/memory"
	pg "fisiomaster-admin/internal/adapters/storage/postgres"
)

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (s *server) registerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "JSON inválido")
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Por favor, preencha todos os campos")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Erro interno")
			return
		}

		u := storage.User{
			ID:           uuid.NewString(),
			Name:         strings.TrimSpace(req.Name),
			Email:        strings.ToLower(strings.TrimSpace(req.Email)),
			PasswordHash: string(hash),
		}
		if err := s.users.Create(r.Context(), u); err != nil {
			if errors.Is(err, memory.ErrExists) || errors.Is(err, pg.ErrExists) {
				writeError(w, http.StatusBadRequest, "Usuário já cadastrado")
				return
			}
			writeError(w, http.StatusInternalServerError, "Erro interno")
			return
		}

		s.respondWithToken(w, http.StatusCreated, u)
	}
}

func (s *server) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		u, err := s.users.GetByEmail(r.Context(), req.Email)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Credenciais inválidas")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, "Credenciais inválidas")
			return
		}

		s.respondWithToken(w, http.StatusOK, u)
	}
}

func (s *server) respondWithToken(w http.ResponseWriter, status int, u storage.User) {
	tok, err := issueToken(s.jwtSecret, authUser{ID: u.ID, Name: u.Name, Email: u.Email})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}
	writeJSON(w, status, userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Token: tok,
	})
}
