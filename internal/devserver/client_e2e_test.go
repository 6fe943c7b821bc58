package devserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"fisiomaster-admin/internal/adapters/api"
	"fisiomaster-admin/internal/adapters/storage/memory"
	"fisiomaster-admin/internal/devserver"
	"fisiomaster-admin/internal/domain/pacientes"
	"fisiomaster-admin/internal/platform/httpclient"
	"fisiomaster-admin/internal/ports/backend"
	"fisiomaster-admin/internal/session"
)

// El stack completo del cliente (manager + resource client + container)
// contra el devserver, como lo arma cmd/fisiocli.
func TestClientStack_EndToEnd(t *testing.T) {
	var hits int64
	handler := devserver.NewRouter(devserver.Options{JWTSecret: "test-secret"})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		handler.ServeHTTP(w, r)
	}))
	defer ts.Close()

	hc, err := httpclient.New(httpclient.Options{BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("httpclient: %v", err)
	}
	manager := session.NewManager(api.NewAuthClient(hc), memory.NewSessionStore(), nil)
	store := pacientes.NewStore(pacientes.NewResource(hc, manager, manager))

	ctx := context.Background()

	// 1) Registro persiste la sesión
	if _, err := manager.Register(ctx, "Ana", "ana@x.com", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := manager.Current(); !ok {
		t.Fatalf("expected session after register")
	}

	// 2) Dos pacientes, list los trae en orden
	for _, nome := range []string{"Maria", "Pedro"} {
		err := store.Create(ctx, pacientes.Paciente{Nome: nome, Telefone: "11 1111", PlanoSaude: "SUS"})
		if err != nil {
			t.Fatalf("create %s: %v", nome, err)
		}
	}
	if err := store.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	snap := store.Container().Snapshot()
	if len(snap.Items) != 2 {
		t.Fatalf("expected 2 pacientes, got %d", len(snap.Items))
	}

	// 3) Create agrega el tercero con el id que asignó el servidor
	if err := store.Create(ctx, pacientes.Paciente{Nome: "João", Telefone: "11 2222", PlanoSaude: "Particular"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	snap = store.Container().Snapshot()
	if len(snap.Items) != 3 {
		t.Fatalf("expected 3 after create, got %d", len(snap.Items))
	}
	created := snap.Items[2]
	if created.ID == "" {
		t.Fatalf("expected server-assigned id on appended entity")
	}

	// 4) Get del creado lo selecciona
	if err := store.Get(ctx, created.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	snap = store.Container().Snapshot()
	if snap.Selected == nil || snap.Selected.ID != created.ID {
		t.Fatalf("expected created paciente selected, got %+v", snap.Selected)
	}

	// 5) Validación local no toca la red
	before := atomic.LoadInt64(&hits)
	if err := store.Create(ctx, pacientes.Paciente{Nome: "Sem telefone"}); !errors.Is(err, backend.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if atomic.LoadInt64(&hits) != before {
		t.Fatalf("local validation must not reach the network")
	}

	// 6) Logout vacía el slot; el próximo list falla con ErrAuth sin
	// tocar la red
	manager.Logout()
	if _, ok := manager.Current(); ok {
		t.Fatalf("expected empty session after logout")
	}

	before = atomic.LoadInt64(&hits)
	if err := store.List(ctx); !errors.Is(err, backend.ErrAuth) {
		t.Fatalf("expected ErrAuth after logout, got %v", err)
	}
	if atomic.LoadInt64(&hits) != before {
		t.Fatalf("list without session must fail before any request")
	}

	snap = store.Container().Snapshot()
	if !snap.IsError || snap.Message != "Sessão expirada. Faça login novamente." {
		t.Fatalf("expected auth failure surfaced in container, got %+v", snap)
	}
	// Los datos previos quedan (fallo no destruye estado).
	if len(snap.Items) != 3 {
		t.Fatalf("failure must keep previous items, got %d", len(snap.Items))
	}

	// 7) Login de vuelta recupera el acceso
	if _, err := manager.Login(ctx, "ana@x.com", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := store.List(ctx); err != nil {
		t.Fatalf("list after re-login: %v", err)
	}
}
