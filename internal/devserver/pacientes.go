package devserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fisiomaster-admin/internal/domain/pacientes"
)

func (s *server) createPacienteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p pacientes.Paciente
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "JSON inválido")
			return
		}
		if strings.TrimSpace(p.Nome) == "" || strings.TrimSpace(p.Telefone) == "" || strings.TrimSpace(p.PlanoSaude) == "" {
			writeError(w, http.StatusBadRequest, "Por favor, preencha os campos obrigatórios")
			return
		}

		p.ID = uuid.NewString()
		if err := s.pacientes.Create(r.Context(), p); err != nil {
			writeError(w, http.StatusInternalServerError, "Erro interno")
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

func (s *server) listPacientesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.pacientes.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Erro interno")
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func (s *server) getPacienteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "pacienteID")
		p, err := s.pacientes.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "Paciente não encontrado")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// updatePacienteHandler reemplaza los campos editables completos (PUT).
func (s *server) updatePacienteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "pacienteID")
		if _, err := s.pacientes.GetByID(r.Context(), id); err != nil {
			writeError(w, http.StatusNotFound, "Paciente não encontrado")
			return
		}

		var p pacientes.Paciente
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "JSON inválido")
			return
		}
		p.ID = id

		if err := s.pacientes.Update(r.Context(), p); err != nil {
			writeError(w, http.StatusInternalServerError, "Erro interno")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func (s *server) deletePacienteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "pacienteID")
		if err := s.pacientes.Delete(r.Context(), id); err != nil {
			writeError(w, http.StatusNotFound, "Paciente não encontrado")
			return
		}
		// Confirmación con eco del id, como espera el cliente.
		writeJSON(w, http.StatusOK, map[string]string{"id": id})
	}
}
