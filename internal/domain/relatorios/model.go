package relatorios

import "github.com/shopspring/decimal"

// Relatorio es el agregado que computa el backend sobre un rango de fechas.
// Efímero: cada fetch reemplaza el snapshot completo, sin merge parcial.
type Relatorio struct {
	TotalProcedimentos int `json:"totalProcedimentos"`

	Producao           decimal.Decimal `json:"producao"`
	ProducaoParticular decimal.Decimal `json:"producaoParticular"`
	ProducaoPlanoSaude decimal.Decimal `json:"producaoPlanoSaude"`

	TotalParticular decimal.Decimal `json:"totalParticular"`
	TotalPlanoSaude decimal.Decimal `json:"totalPlanoSaude"`

	EvolucoesGeradas           int `json:"evolucoesGeradas"`
	EvolucoesGeradasParticular int `json:"evolucoesGeradasParticular"`
	EvolucoesGeradasPlanoSaude int `json:"evolucoesGeradasPlanoSaude"`

	PacientesAtendidos int `json:"pacientesAtendidos"`

	PeriodoInicio string `json:"periodoInicio"`
	PeriodoFim    string `json:"periodoFim"`
}

// Scope del relatório exportado por email.
type Scope string

const (
	ScopeCompleto   Scope = "completo"
	ScopeParticular Scope = "particular"
	ScopePlanoSaude Scope = "plano-saude"
)
