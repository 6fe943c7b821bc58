package procedimentos

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"fisiomaster-admin/internal/domain/pacientes"
	"fisiomaster-admin/internal/ports/backend"
)

func init() {
	// El backend habla números JSON planos para los valores; el default de
	// shopspring (string con comillas) rompería el contrato.
	decimal.MarshalJSONWithoutQuotes = true
}

// PacienteRef es la referencia many-to-one al paciente. El backend la
// devuelve como id pelado o expandida con el resumen del paciente; hacia el
// backend siempre se manda el id.
type PacienteRef struct {
	ID     string
	Resumo *pacientes.Paciente // solo cuando el backend expande
}

func (r PacienteRef) MarshalJSON() ([]byte, error) {
	if r.Resumo != nil {
		return json.Marshal(r.Resumo)
	}
	return json.Marshal(r.ID)
}

func (r *PacienteRef) UnmarshalJSON(data []byte) error {
	// Caso id pelado: "64ab..."
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		r.Resumo = nil
		return nil
	}

	// Caso expandido: objeto paciente embebido.
	var p pacientes.Paciente
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	r.ID = p.ID
	r.Resumo = &p
	return nil
}

// Procedimento con los tags del contrato del backend. valorFixo lo asigna
// el backend con su default; el cliente no lo manda en create.
type Procedimento struct {
	ID             string          `json:"_id,omitempty"`
	Nome           string          `json:"nome"`
	Descricao      string          `json:"descricao,omitempty"`
	Paciente       PacienteRef     `json:"paciente"`
	DataRealizacao string          `json:"dataRealizacao"`
	Evolucao       string          `json:"evolucao,omitempty"`
	PlanoSaude     string          `json:"planoSaude"`
	ValorPlano     decimal.Decimal `json:"valorPlano"`
	ValorFixo      decimal.Decimal `json:"valorFixo"`
}

func (p Procedimento) EntityID() string { return p.ID }

// Validate replica el formulario: paciente, planoSaude y valorPlano > 0.
func (p Procedimento) Validate() error {
	if strings.TrimSpace(p.Paciente.ID) == "" ||
		strings.TrimSpace(p.PlanoSaude) == "" ||
		!p.ValorPlano.IsPositive() {
		return backend.Wrap(backend.ErrValidation, "Por favor, preencha os campos obrigatórios")
	}
	return nil
}
