package devserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fisiomaster-admin/internal/domain/relatorios"
)

const dateLayout = "2006-01-02"

// parseRange lee startDate/endDate; sin query usa el mes corriente, igual
// que la página de relatórios original.
func parseRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	if v := r.URL.Query().Get("startDate"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("startDate inválido")
		}
		start = t
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("endDate inválido")
		}
		end = t
	}
	return start, end, nil
}

// buildRelatorio computa el agregado del período. "Particular" separa de
// los planos de saúde; producao suma valorPlano, total suma valorFixo.
func (s *server) buildRelatorio(r *http.Request, start, end time.Time) (relatorios.Relatorio, error) {
	procs, err := s.procedimentos.List(r.Context())
	if err != nil {
		return relatorios.Relatorio{}, err
	}

	rel := relatorios.Relatorio{
		PeriodoInicio: start.Format(dateLayout),
		PeriodoFim:    end.Format(dateLayout),
	}
	atendidos := map[string]struct{}{}

	for _, p := range procs {
		t, err := time.Parse(dateLayout, p.DataRealizacao)
		if err != nil {
			continue // registro con fecha ilegible no entra al agregado
		}
		if t.Before(start) || t.After(end) {
			continue
		}

		rel.TotalProcedimentos++
		atendidos[p.Paciente.ID] = struct{}{}

		particular := p.PlanoSaude == "Particular"
		temEvolucao := strings.TrimSpace(p.Evolucao) != ""

		if temEvolucao {
			rel.EvolucoesGeradas++
		}
		if particular {
			rel.ProducaoParticular = rel.ProducaoParticular.Add(p.ValorPlano)
			rel.TotalParticular = rel.TotalParticular.Add(p.ValorFixo)
			if temEvolucao {
				rel.EvolucoesGeradasParticular++
			}
		} else {
			rel.ProducaoPlanoSaude = rel.ProducaoPlanoSaude.Add(p.ValorPlano)
			rel.TotalPlanoSaude = rel.TotalPlanoSaude.Add(p.ValorFixo)
			if temEvolucao {
				rel.EvolucoesGeradasPlanoSaude++
			}
		}
	}

	rel.Producao = rel.ProducaoParticular.Add(rel.ProducaoPlanoSaude)
	rel.PacientesAtendidos = len(atendidos)
	return rel, nil
}

func (s *server) relatorioHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := parseRange(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		rel, err := s.buildRelatorio(r, start, end)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Erro interno")
			return
		}
		if s.log != nil {
			s.log.Debug("relatorio computado", map[string]any{
				"start":         rel.PeriodoInicio,
				"end":           rel.PeriodoFim,
				"procedimentos": rel.TotalProcedimentos,
			})
		}
		writeJSON(w, http.StatusOK, rel)
	}
}

// emailRelatorioHandler simula el envío: loguea y confirma. El envío real
// (SendGrid o SMTP) es del backend productivo, no del stub de dev.
func (s *server) emailRelatorioHandler(scope relatorios.Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := parseRange(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Email) == "" {
			writeError(w, http.StatusBadRequest, "Por favor, informe um endereço de email")
			return
		}

		if _, err := s.buildRelatorio(r, start, end); err != nil {
			writeError(w, http.StatusInternalServerError, "Erro interno")
			return
		}

		if s.log != nil {
			s.log.Info("relatorio email (simulado)", map[string]any{
				"to":    req.Email,
				"scope": string(scope),
				"start": start.Format(dateLayout),
				"end":   end.Format(dateLayout),
			})
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Relatório enviado para " + strings.TrimSpace(req.Email),
		})
	}
}

func (s *server) pdfRelatorioHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := parseRange(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		rel, err := s.buildRelatorio(r, start, end)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Erro interno")
			return
		}

		pdf := buildPDF([]string{
			"Relatorio de Producao - FisiMaster",
			fmt.Sprintf("Periodo: %s a %s", rel.PeriodoInicio, rel.PeriodoFim),
			fmt.Sprintf("Total de procedimentos: %d", rel.TotalProcedimentos),
			fmt.Sprintf("Producao total: %s", formatBRL(rel.Producao)),
			fmt.Sprintf("Producao particular: %s", formatBRL(rel.ProducaoParticular)),
			fmt.Sprintf("Producao planos de saude: %s", formatBRL(rel.ProducaoPlanoSaude)),
			fmt.Sprintf("Evolucoes geradas: %d", rel.EvolucoesGeradas),
			fmt.Sprintf("Pacientes atendidos: %d", rel.PacientesAtendidos),
		})

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="relatorio.pdf"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdf)
	}
}

func formatBRL(v decimal.Decimal) string {
	return "R$ " + v.StringFixed(2)
}
