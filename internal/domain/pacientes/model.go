package pacientes

import (
	"strings"

	"fisiomaster-admin/internal/ports/backend"
)

// Paciente con los tags del contrato del backend (campos en portugués,
// id de Mongo en "_id"). Las fechas viajan como "yyyy-MM-dd".
type Paciente struct {
	ID                string `json:"_id,omitempty"`
	Nome              string `json:"nome"`
	DataNascimento    string `json:"dataNascimento,omitempty"`
	Telefone          string `json:"telefone"`
	Email             string `json:"email,omitempty"`
	Endereco          string `json:"endereco,omitempty"`
	PlanoSaude        string `json:"planoSaude"`
	NumeroCarteirinha string `json:"numeroCarteirinha,omitempty"`
	Observacoes       string `json:"observacoes,omitempty"`
}

func (p Paciente) EntityID() string { return p.ID }

// Validate replica la validación de formulario del cliente: nome, telefone
// y planoSaude son obligatorios. Se resuelve acá, nunca llega a la red.
func (p Paciente) Validate() error {
	if strings.TrimSpace(p.Nome) == "" ||
		strings.TrimSpace(p.Telefone) == "" ||
		strings.TrimSpace(p.PlanoSaude) == "" {
		return backend.Wrap(backend.ErrValidation, "Por favor, preencha os campos obrigatórios")
	}
	return nil
}
