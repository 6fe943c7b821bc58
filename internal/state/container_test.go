package state

import (
	"errors"
	"testing"

	"fisiomaster-admin/internal/ports/backend"
)

// -------------------------
// Entity de prueba
// -------------------------

type item struct {
	ID   string
	Nome string
}

func (i item) EntityID() string { return i.ID }

func seeded(t *testing.T, items ...item) *Container[item] {
	t.Helper()
	c := NewContainer[item]()
	tk := c.Begin(OpList)
	if !c.SucceedList(tk, items) {
		t.Fatalf("seed list discarded")
	}
	return c
}

func TestBegin_ClearsFlagsOfPreviousOperation(t *testing.T) {
	c := NewContainer[item]()

	tk := c.Begin(OpCreate)
	c.Fail(tk, errors.New("boom"))

	snap := c.Snapshot()
	if !snap.IsError || snap.Message == "" {
		t.Fatalf("expected error flags after fail, got %+v", snap)
	}

	// El próximo despacho limpia flags y mensaje de la operación anterior.
	c.Begin(OpList)
	snap = c.Snapshot()
	if !snap.IsLoading {
		t.Fatalf("expected loading after begin")
	}
	if snap.IsError || snap.IsSuccess || snap.Message != "" {
		t.Fatalf("expected flags cleared at dispatch, got %+v", snap)
	}
}

func TestFail_PreservesItemsAndSelected(t *testing.T) {
	c := seeded(t, item{ID: "a", Nome: "Ana"}, item{ID: "b", Nome: "Bia"})

	tg := c.Begin(OpGet)
	c.SucceedGet(tg, item{ID: "a", Nome: "Ana"})

	tk := c.Begin(OpUpdate)
	c.Fail(tk, backend.Wrap(backend.ErrValidation, "campos obrigatórios"))

	snap := c.Snapshot()
	if len(snap.Items) != 2 {
		t.Fatalf("fail must not touch items, got %d", len(snap.Items))
	}
	if snap.Selected == nil || snap.Selected.ID != "a" {
		t.Fatalf("fail must not touch selected, got %+v", snap.Selected)
	}
	if !snap.IsError || snap.Message != "campos obrigatórios" {
		t.Fatalf("expected normalized failure message, got %+v", snap)
	}
}

func TestSucceedCreate_AppendsWithoutDedup(t *testing.T) {
	c := seeded(t, item{ID: "a"})

	// Doble submit del mismo recurso: dos entradas (append puro).
	t1 := c.Begin(OpCreate)
	c.SucceedCreate(t1, item{ID: "x", Nome: "Duplicado"})
	t2 := c.Begin(OpCreate)
	c.SucceedCreate(t2, item{ID: "x", Nome: "Duplicado"})

	snap := c.Snapshot()
	if len(snap.Items) != 3 {
		t.Fatalf("expected pure append (3 items), got %d", len(snap.Items))
	}
}

func TestSucceedUpdate_ReconcilesSelectedAndCollection(t *testing.T) {
	c := seeded(t, item{ID: "a", Nome: "Ana"}, item{ID: "b", Nome: "Bia"})

	tg := c.Begin(OpGet)
	c.SucceedGet(tg, item{ID: "b", Nome: "Bia"})

	tk := c.Begin(OpUpdate)
	c.SucceedUpdate(tk, item{ID: "b", Nome: "Beatriz"})

	snap := c.Snapshot()
	if snap.Selected == nil || snap.Selected.Nome != "Beatriz" {
		t.Fatalf("expected selected updated, got %+v", snap.Selected)
	}
	if snap.Items[1].Nome != "Beatriz" {
		t.Fatalf("expected collection entry updated, got %+v", snap.Items[1])
	}
	if snap.Items[0].Nome != "Ana" {
		t.Fatalf("update must not touch other entries, got %+v", snap.Items[0])
	}
}

func TestSucceedDelete_RemovesConfirmedIDAndClearsSelected(t *testing.T) {
	c := seeded(t, item{ID: "a"}, item{ID: "b"}, item{ID: "c"})

	tg := c.Begin(OpGet)
	c.SucceedGet(tg, item{ID: "b"})

	tk := c.Begin(OpDelete)
	c.SucceedDelete(tk, "b")

	snap := c.Snapshot()
	if len(snap.Items) != 2 {
		t.Fatalf("expected exactly one removed, got %d items", len(snap.Items))
	}
	for _, it := range snap.Items {
		if it.ID == "b" {
			t.Fatalf("deleted id still in collection")
		}
	}
	if snap.Selected != nil {
		t.Fatalf("selected matching deleted id must be cleared")
	}
}

func TestSucceedDelete_KeepsUnrelatedSelected(t *testing.T) {
	c := seeded(t, item{ID: "a"}, item{ID: "b"})

	tg := c.Begin(OpGet)
	c.SucceedGet(tg, item{ID: "a"})

	tk := c.Begin(OpDelete)
	c.SucceedDelete(tk, "b")

	snap := c.Snapshot()
	if snap.Selected == nil || snap.Selected.ID != "a" {
		t.Fatalf("unrelated selected must survive delete, got %+v", snap.Selected)
	}
}

func TestStaleTicket_IsDiscarded(t *testing.T) {
	c := NewContainer[item]()

	// Dos despachos de la misma op: gana el último despachado, no el
	// último en resolver.
	old := c.Begin(OpList)
	fresh := c.Begin(OpList)

	if !c.SucceedList(fresh, []item{{ID: "new"}}) {
		t.Fatalf("fresh resolution must apply")
	}
	if c.SucceedList(old, []item{{ID: "old"}}) {
		t.Fatalf("stale resolution must be discarded")
	}

	snap := c.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != "new" {
		t.Fatalf("stale resolution overwrote newer state: %+v", snap.Items)
	}
}

func TestStaleTicket_DifferentOpsDoNotInterfere(t *testing.T) {
	c := NewContainer[item]()

	tl := c.Begin(OpList)
	tg := c.Begin(OpGet)

	// El despacho de OpGet no invalida el ticket de OpList.
	if !c.SucceedList(tl, []item{{ID: "a"}}) {
		t.Fatalf("list ticket must still be valid")
	}
	if !c.SucceedGet(tg, item{ID: "a"}) {
		t.Fatalf("get ticket must still be valid")
	}
}

func TestFail_StaleIsAlsoDiscarded(t *testing.T) {
	c := seeded(t, item{ID: "a"})

	old := c.Begin(OpList)
	fresh := c.Begin(OpList)
	c.SucceedList(fresh, []item{{ID: "b"}})

	if c.Fail(old, errors.New("late failure")) {
		t.Fatalf("stale failure must be discarded")
	}
	snap := c.Snapshot()
	if snap.IsError {
		t.Fatalf("stale failure flagged error over newer success")
	}
}

func TestReset_ClearsStateAndInvalidatesInFlight(t *testing.T) {
	c := seeded(t, item{ID: "a"})

	inflight := c.Begin(OpList)
	c.Reset()

	snap := c.Snapshot()
	if len(snap.Items) != 0 || snap.Selected != nil || snap.IsLoading || snap.IsError || snap.IsSuccess {
		t.Fatalf("reset must return to idle empty, got %+v", snap)
	}

	// La resolución del ciclo anterior llega después del reset: descartada.
	if c.SucceedList(inflight, []item{{ID: "zombie"}}) {
		t.Fatalf("pre-reset in-flight resolution must be stale")
	}
	if got := c.Snapshot(); len(got.Items) != 0 {
		t.Fatalf("zombie resolution repopulated container: %+v", got.Items)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	c := seeded(t, item{ID: "a", Nome: "Ana"})

	snap := c.Snapshot()
	snap.Items[0].Nome = "mutado"
	if snap.Selected != nil {
		t.Fatalf("no selected expected")
	}

	if got := c.Snapshot(); got.Items[0].Nome != "Ana" {
		t.Fatalf("snapshot mutation leaked into container")
	}
}
