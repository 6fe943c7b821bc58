package state

import "context"

// Client son las cinco operaciones del resource client, más list por
// relación. Lo implementa api.Resource[T].
type Client[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	ListBy(ctx context.Context, rel string) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, data T) (T, error)
	Update(ctx context.Context, id string, data T) (T, error)
	Delete(ctx context.Context, id string) (string, error)
}

// Store ata un resource client a su container: despacha la operación,
// transiciona pending y resuelve succeeded/failed sobre el container.
// Reemplaza el reducer pending/succeeded/failed que el cliente original
// duplicaba a mano por recurso.
//
// Los métodos son bloqueantes; la vista que quiera el modelo asíncrono los
// corre en una goroutine y renderiza desde Container().Snapshot(). El
// ticket por despacho garantiza que una resolución fuera de orden no pise
// estado más nuevo (gana la última despachada, no la última en resolver).
type Store[T Entity] struct {
	client Client[T]
	cont   *Container[T]
}

func NewStore[T Entity](client Client[T]) *Store[T] {
	return &Store[T]{
		client: client,
		cont:   NewContainer[T](),
	}
}

func (s *Store[T]) Container() *Container[T] { return s.cont }

func (s *Store[T]) List(ctx context.Context) error {
	t := s.cont.Begin(OpList)
	items, err := s.client.List(ctx)
	if err != nil {
		s.cont.Fail(t, err)
		return err
	}
	s.cont.SucceedList(t, items)
	return nil
}

func (s *Store[T]) ListBy(ctx context.Context, rel string) error {
	t := s.cont.Begin(OpListByRelation)
	items, err := s.client.ListBy(ctx, rel)
	if err != nil {
		s.cont.Fail(t, err)
		return err
	}
	s.cont.SucceedList(t, items)
	return nil
}

func (s *Store[T]) Get(ctx context.Context, id string) error {
	t := s.cont.Begin(OpGet)
	item, err := s.client.Get(ctx, id)
	if err != nil {
		s.cont.Fail(t, err)
		return err
	}
	s.cont.SucceedGet(t, item)
	return nil
}

func (s *Store[T]) Create(ctx context.Context, data T) error {
	t := s.cont.Begin(OpCreate)
	item, err := s.client.Create(ctx, data)
	if err != nil {
		s.cont.Fail(t, err)
		return err
	}
	s.cont.SucceedCreate(t, item)
	return nil
}

func (s *Store[T]) Update(ctx context.Context, id string, data T) error {
	t := s.cont.Begin(OpUpdate)
	item, err := s.client.Update(ctx, id, data)
	if err != nil {
		s.cont.Fail(t, err)
		return err
	}
	s.cont.SucceedUpdate(t, item)
	return nil
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	t := s.cont.Begin(OpDelete)
	echoed, err := s.client.Delete(ctx, id)
	if err != nil {
		s.cont.Fail(t, err)
		return err
	}
	s.cont.SucceedDelete(t, echoed)
	return nil
}

// Reset delega al container (se llama al salir de las vistas del recurso).
func (s *Store[T]) Reset() {
	s.cont.Reset()
}
