package relatorios

import (
	"context"
	"sync"

	"fisiomaster-admin/internal/ports/backend"
)

// Store guarda el último snapshot del relatório. A diferencia de los
// containers de recursos, acá no hay colección: cada fetch exitoso
// reemplaza el snapshot entero, así un campo presente en el período A y
// ausente en el B no puede quedar colgado.
type Store struct {
	mu sync.Mutex

	// seq crece en cada despacho; una resolución cuyo ticket ya no es el
	// último emitido se descarta (gana el último fetch despachado, no el
	// último en resolver).
	seq uint64

	snap Relatorio
	has  bool

	isLoading bool
	isError   bool
	message   string
}

func NewStore() *Store {
	return &Store{}
}

type Snapshot struct {
	Relatorio Relatorio
	Has       bool

	IsLoading bool
	IsError   bool
	Message   string
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Relatorio: s.snap,
		Has:       s.has,
		IsLoading: s.isLoading,
		IsError:   s.isError,
		Message:   s.message,
	}
}

// Fetch despacha la carga vía client y resuelve sobre el store.
func (s *Store) Fetch(ctx context.Context, client *Client, startDate, endDate string) error {
	s.mu.Lock()
	s.seq++
	ticket := s.seq
	s.isLoading = true
	s.isError = false
	s.message = ""
	s.mu.Unlock()

	rel, err := client.Fetch(ctx, startDate, endDate)

	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.seq {
		// Despacho más nuevo en curso o ya resuelto: esta resolución es
		// stale y no toca el estado.
		return err
	}
	s.isLoading = false
	if err != nil {
		s.isError = true
		s.message = backend.MessageOf(err)
		return err
	}
	s.snap = rel // reemplazo wholesale
	s.has = true
	return nil
}

// Reset vacía el snapshot. La secuencia avanza en vez de rebobinarse: una
// resolución en vuelo del ciclo anterior queda stale.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.snap = Relatorio{}
	s.has = false
	s.isLoading = false
	s.isError = false
	s.message = ""
}
