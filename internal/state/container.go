package state

import (
	"sync"

	"fisiomaster-admin/internal/ports/backend"
)

// Op identifica el grupo de acción dentro de un container. Cada op lleva su
// propio contador de secuencia para descartar resoluciones stale.
type Op int

const (
	OpList Op = iota
	OpListByRelation
	OpGet
	OpCreate
	OpUpdate
	OpDelete
)

// Entity es lo mínimo que el container necesita para reconciliar por id.
type Entity interface {
	EntityID() string
}

// Snapshot es la vista inmutable que renderiza la capa de presentación.
type Snapshot[T Entity] struct {
	Items    []T
	Selected *T

	IsLoading bool
	IsSuccess bool
	IsError   bool
	Message   string
}

// Container es la máquina de estados idle → pending → succeeded/failed por
// recurso. Una instancia por recurso lógico; todas las ops comparten el
// mismo snapshot de colección. Las vistas nunca mutan el snapshot directo:
// solo el resultado de operaciones en vuelo lo hace.
type Container[T Entity] struct {
	mu   sync.Mutex
	snap Snapshot[T]

	// seq[op] = última secuencia emitida. Monotónico por vida del
	// container (sobrevive a Reset, para que un in-flight viejo nunca
	// empate con una secuencia nueva).
	seq map[Op]uint64
}

func NewContainer[T Entity]() *Container[T] {
	return &Container[T]{
		snap: Snapshot[T]{Items: []T{}},
		seq:  make(map[Op]uint64),
	}
}

// Ticket identifica un despacho. Solo la resolución cuyo ticket siga siendo
// el último emitido para esa op puede tocar el estado.
type Ticket struct {
	op  Op
	seq uint64
}

// Begin marca pending: prende isLoading y limpia los flags de la operación
// anterior. La limpieza pasa acá, al despachar — no en el re-render — para
// que no queden flags stale colgando de la operación previa.
func (c *Container[T]) Begin(op Op) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq[op]++

	c.snap.IsLoading = true
	c.snap.IsSuccess = false
	c.snap.IsError = false
	c.snap.Message = ""

	return Ticket{op: op, seq: c.seq[op]}
}

// SucceedList reemplaza la colección completa, en el orden del servidor.
// Vale para list y list-por-relación. Retorna false si el ticket es stale.
func (c *Container[T]) SucceedList(t Ticket, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stale(t) {
		return false
	}
	if items == nil {
		items = []T{}
	}
	c.snap.Items = items
	c.succeed()
	return true
}

// SucceedGet reemplaza el seleccionado.
func (c *Container[T]) SucceedGet(t Ticket, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stale(t) {
		return false
	}
	c.snap.Selected = &item
	c.succeed()
	return true
}

// SucceedCreate agrega al final. Append puro, sin dedup: un doble submit
// produce entradas duplicadas hasta el próximo list (comportamiento
// conocido, la guarda va en la vista si el deploy la quiere).
func (c *Container[T]) SucceedCreate(t Ticket, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stale(t) {
		return false
	}
	c.snap.Items = append(c.snap.Items, item)
	c.succeed()
	return true
}

// SucceedUpdate reemplaza el seleccionado Y el elemento de la colección con
// el mismo id. Las dos vistas del mismo recurso no pueden divergir.
func (c *Container[T]) SucceedUpdate(t Ticket, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stale(t) {
		return false
	}
	c.snap.Selected = &item
	for i := range c.snap.Items {
		if c.snap.Items[i].EntityID() == item.EntityID() {
			c.snap.Items[i] = item
		}
	}
	c.succeed()
	return true
}

// SucceedDelete remueve de la colección el id que el backend confirmó.
func (c *Container[T]) SucceedDelete(t Ticket, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stale(t) {
		return false
	}
	kept := c.snap.Items[:0:0]
	for _, it := range c.snap.Items {
		if it.EntityID() != id {
			kept = append(kept, it)
		}
	}
	if kept == nil {
		kept = []T{}
	}
	c.snap.Items = kept
	if c.snap.Selected != nil && (*c.snap.Selected).EntityID() == id {
		c.snap.Selected = nil
	}
	c.succeed()
	return true
}

// Fail marca el error con el mensaje normalizado. No toca Items/Selected.
func (c *Container[T]) Fail(t Ticket, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stale(t) {
		return false
	}
	c.snap.IsLoading = false
	c.snap.IsSuccess = false
	c.snap.IsError = true
	c.snap.Message = backend.MessageOf(err)
	return true
}

// Reset devuelve el container a su forma inicial vacía/idle. Se llama al
// desmontar la vista, para que los flags no se filtren a la próxima vista
// que reuse el container. Las secuencias NO se resetean: así cualquier
// resolución en vuelo del ciclo anterior queda stale y se descarta.
func (c *Container[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for op := range c.seq {
		c.seq[op]++
	}
	c.snap = Snapshot[T]{Items: []T{}}
}

// Snapshot retorna una copia para render (slice copiado, selected copiado).
func (c *Container[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.snap
	out.Items = make([]T, len(c.snap.Items))
	copy(out.Items, c.snap.Items)
	if c.snap.Selected != nil {
		sel := *c.snap.Selected
		out.Selected = &sel
	}
	return out
}

func (c *Container[T]) stale(t Ticket) bool {
	return c.seq[t.op] != t.seq
}

func (c *Container[T]) succeed() {
	c.snap.IsLoading = false
	c.snap.IsError = false
	c.snap.IsSuccess = true
	c.snap.Message = ""
}
