package devserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fisiomaster-admin/internal/domain/procedimentos"
)

// Defaults de valorFixo que asigna el backend cuando el cliente no manda
// el campo: SUS paga 6.35, el resto de los planos 5.00.
var (
	valorFixoSUS     = decimal.NewFromFloat(6.35)
	valorFixoDefault = decimal.NewFromInt(5)
)

func (s *server) createProcedimentoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p procedimentos.Procedimento
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "JSON inválido")
			return
		}
		if strings.TrimSpace(p.Paciente.ID) == "" || strings.TrimSpace(p.PlanoSaude) == "" || !p.ValorPlano.IsPositive() {
			writeError(w, http.StatusBadRequest, "Por favor, preencha os campos obrigatórios")
			return
		}
		if _, err := s.pacientes.GetByID(r.Context(), p.Paciente.ID); err != nil {
			writeError(w, http.StatusNotFound, "Paciente não encontrado")
			return
		}

		p.ID = uuid.NewString()
		if p.ValorFixo.IsZero() {
			if p.PlanoSaude == "SUS" {
				p.ValorFixo = valorFixoSUS
			} else {
				p.ValorFixo = valorFixoDefault
			}
		}

		if err := s.procedimentos.Create(r.Context(), p); err != nil {
			writeError(w, http.StatusInternalServerError, "Erro interno")
			return
		}
		writeJSON(w, http.StatusCreated, s.expandPaciente(r, p))
	}
}

func (s *server) listProcedimentosHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.procedimentos.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Erro interno")
			return
		}
		writeJSON(w, http.StatusOK, s.expandPacientes(r, items))
	}
}

func (s *server) listProcedimentosByPacienteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pacienteID := chi.URLParam(r, "pacienteID")
		items, err := s.procedimentos.ListByPaciente(r.Context(), pacienteID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Erro interno")
			return
		}
		writeJSON(w, http.StatusOK, s.expandPacientes(r, items))
	}
}

func (s *server) getProcedimentoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "procedimentoID")
		p, err := s.procedimentos.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "Procedimento não encontrado")
			return
		}
		writeJSON(w, http.StatusOK, s.expandPaciente(r, p))
	}
}

func (s *server) updateProcedimentoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "procedimentoID")
		if _, err := s.procedimentos.GetByID(r.Context(), id); err != nil {
			writeError(w, http.StatusNotFound, "Procedimento não encontrado")
			return
		}

		var p procedimentos.Procedimento
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "JSON inválido")
			return
		}
		p.ID = id

		if err := s.procedimentos.Update(r.Context(), p); err != nil {
			writeError(w, http.StatusInternalServerError, "Erro interno")
			return
		}
		writeJSON(w, http.StatusOK, s.expandPaciente(r, p))
	}
}

func (s *server) deleteProcedimentoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "procedimentoID")
		if err := s.procedimentos.Delete(r.Context(), id); err != nil {
			writeError(w, http.StatusNotFound, "Procedimento não encontrado")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": id})
	}
}

// expandPaciente embebe el resumen del paciente en la referencia, como
// hace el backend original (populate de Mongo). Si el paciente ya no
// existe, la referencia queda como id pelado.
func (s *server) expandPaciente(r *http.Request, p procedimentos.Procedimento) procedimentos.Procedimento {
	pac, err := s.pacientes.GetByID(r.Context(), p.Paciente.ID)
	if err == nil {
		p.Paciente.Resumo = &pac
	}
	return p
}

func (s *server) expandPacientes(r *http.Request, items []procedimentos.Procedimento) []procedimentos.Procedimento {
	out := make([]procedimentos.Procedimento, 0, len(items))
	for _, p := range items {
		out = append(out, s.expandPaciente(r, p))
	}
	return out
}
