package pacientes

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"fisiomaster-admin/internal/ports/backend"
)

func TestValidate_RequiredFields(t *testing.T) {
	valid := Paciente{Nome: "Maria", Telefone: "11 1111", PlanoSaude: "SUS"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid paciente rejected: %v", err)
	}

	cases := []struct {
		name string
		mut  func(*Paciente)
	}{
		{"sem nome", func(p *Paciente) { p.Nome = "  " }},
		{"sem telefone", func(p *Paciente) { p.Telefone = "" }},
		{"sem plano", func(p *Paciente) { p.PlanoSaude = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mut(&p)
			if err := p.Validate(); !errors.Is(err, backend.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestPaciente_WireIDTag(t *testing.T) {
	raw, err := json.Marshal(Paciente{ID: "abc", Nome: "Maria"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"_id":"abc"`) {
		t.Fatalf("expected _id tag on the wire, got %s", raw)
	}

	// Sin id (create): el campo no viaja.
	raw, err = json.Marshal(Paciente{Nome: "Maria"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "_id") {
		t.Fatalf("empty id must be omitted, got %s", raw)
	}
}
