package relatorios

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fisiomaster-admin/internal/platform/httpclient"
	"fisiomaster-admin/internal/ports/backend"
)

type staticCreds struct{ token string }

func (s staticCreds) Token(ctx context.Context) (string, error) { return s.token, nil }

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	hc, err := httpclient.New(httpclient.Options{BaseURL: baseURL})
	if err != nil {
		t.Fatalf("httpclient: %v", err)
	}
	return NewClient(hc, staticCreds{token: "tok"}, nil)
}

func TestStore_FetchReplacesSnapshotWholesale(t *testing.T) {
	// Primer período con evoluções; el segundo sin. Un merge parcial
	// dejaría el contador viejo colgado.
	responses := []Relatorio{
		{TotalProcedimentos: 5, EvolucoesGeradas: 3, PeriodoInicio: "2026-01-01", PeriodoFim: "2026-01-31"},
		{TotalProcedimentos: 2, PeriodoInicio: "2026-02-01", PeriodoFim: "2026-02-28"},
	}
	var call int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(responses[call])
		call++
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	store := NewStore()

	if err := store.Fetch(context.Background(), client, "2026-01-01", "2026-01-31"); err != nil {
		t.Fatalf("fetch 1: %v", err)
	}
	if err := store.Fetch(context.Background(), client, "2026-02-01", "2026-02-28"); err != nil {
		t.Fatalf("fetch 2: %v", err)
	}

	snap := store.Snapshot()
	if !snap.Has || snap.Relatorio.TotalProcedimentos != 2 {
		t.Fatalf("expected second period snapshot, got %+v", snap.Relatorio)
	}
	if snap.Relatorio.EvolucoesGeradas != 0 {
		t.Fatalf("stale field survived wholesale replace: %+v", snap.Relatorio)
	}
}

func TestStore_FetchFailureKeepsPreviousSnapshot(t *testing.T) {
	var call int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if call == 0 {
			_ = json.NewEncoder(w).Encode(Relatorio{TotalProcedimentos: 7})
		} else {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Erro interno"})
		}
		call++
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	store := NewStore()

	if err := store.Fetch(context.Background(), client, "2026-01-01", "2026-01-31"); err != nil {
		t.Fatalf("fetch 1: %v", err)
	}
	if err := store.Fetch(context.Background(), client, "2026-02-01", "2026-02-28"); err == nil {
		t.Fatalf("expected failure")
	}

	snap := store.Snapshot()
	if !snap.Has || snap.Relatorio.TotalProcedimentos != 7 {
		t.Fatalf("failure must keep previous snapshot, got %+v", snap)
	}
	if !snap.IsError || snap.Message != "Erro interno" {
		t.Fatalf("expected error flags with backend message, got %+v", snap)
	}
}

func TestStore_SlowOlderFetchCannotOverwriteNewer(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("startDate") == "2026-01-01" {
			// Período A: se queda colgado hasta que B ya respondió.
			close(arrived)
			<-release
			_ = json.NewEncoder(w).Encode(Relatorio{TotalProcedimentos: 1, PeriodoInicio: "2026-01-01"})
			return
		}
		_ = json.NewEncoder(w).Encode(Relatorio{TotalProcedimentos: 2, PeriodoInicio: "2026-02-01"})
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	store := NewStore()

	done := make(chan error, 1)
	go func() {
		done <- store.Fetch(context.Background(), client, "2026-01-01", "2026-01-31")
	}()
	<-arrived

	if err := store.Fetch(context.Background(), client, "2026-02-01", "2026-02-28"); err != nil {
		t.Fatalf("fetch B: %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("fetch A: %v", err)
	}

	snap := store.Snapshot()
	if snap.Relatorio.PeriodoInicio != "2026-02-01" || snap.Relatorio.TotalProcedimentos != 2 {
		t.Fatalf("stale resolution overwrote newer snapshot: %+v", snap.Relatorio)
	}
	if snap.IsLoading || snap.IsError {
		t.Fatalf("stale resolution must not touch flags: %+v", snap)
	}
}

func TestStore_ResetInvalidatesInFlightFetch(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		_ = json.NewEncoder(w).Encode(Relatorio{TotalProcedimentos: 9})
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	store := NewStore()

	done := make(chan error, 1)
	go func() {
		done <- store.Fetch(context.Background(), client, "2026-01-01", "2026-01-31")
	}()
	<-arrived

	store.Reset()
	close(release)
	<-done

	snap := store.Snapshot()
	if snap.Has || snap.Relatorio.TotalProcedimentos != 0 {
		t.Fatalf("pre-reset in-flight fetch repopulated store: %+v", snap)
	}
}

func TestClient_FetchValidatesDatesBeforeNetwork(t *testing.T) {
	var hits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	_, err := client.Fetch(context.Background(), "01/01/2026", "2026-01-31")
	if !errors.Is(err, backend.ErrValidation) {
		t.Fatalf("expected ErrValidation for dd/MM/yyyy, got %v", err)
	}
	if hits != 0 {
		t.Fatalf("invalid dates must fail before any request")
	}
}

func TestClient_EmailScopeRouting(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Relatório enviado para ana@x.com"})
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)

	cases := []struct {
		scope Scope
		path  string
	}{
		{ScopeCompleto, "/relatorios/email"},
		{ScopeParticular, "/relatorios/email/particular"},
		{ScopePlanoSaude, "/relatorios/email/plano-saude"},
	}
	for _, tc := range cases {
		msg, err := client.Email(context.Background(), "ana@x.com", tc.scope, "2026-01-01", "2026-01-31")
		if err != nil {
			t.Fatalf("email scope %s: %v", tc.scope, err)
		}
		if gotPath != tc.path {
			t.Fatalf("scope %s: expected path %s, got %s", tc.scope, tc.path, gotPath)
		}
		if msg != "Relatório enviado para ana@x.com" {
			t.Fatalf("expected confirmation message, got %q", msg)
		}
	}

	if _, err := client.Email(context.Background(), "ana@x.com", Scope("mensal"), "2026-01-01", "2026-01-31"); !errors.Is(err, backend.ErrValidation) {
		t.Fatalf("unknown scope must be ErrValidation, got %v", err)
	}
}

func TestClient_EmailRequiresAddress(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	_, err := client.Email(context.Background(), "  ", ScopeCompleto, "2026-01-01", "2026-01-31")
	if !errors.Is(err, backend.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty address, got %v", err)
	}
}

func TestClient_DownloadPDFWritesBody(t *testing.T) {
	payload := []byte("%PDF-1.4 fake")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/relatorios/pdf" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(payload)
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	var buf bytes.Buffer
	if err := client.DownloadPDF(context.Background(), "2026-01-01", "2026-01-31", &buf); err != nil {
		t.Fatalf("download: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), payload) {
		t.Fatalf("pdf body mismatch")
	}
}
