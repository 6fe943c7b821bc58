package session

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"fisiomaster-admin/internal/ports/backend"
)

// -------------------------
// Fakes
// -------------------------

type fakeAPI struct {
	sess  Session
	err   error
	calls int
}

func (f *fakeAPI) Register(ctx context.Context, name, email, password string) (Session, error) {
	f.calls++
	return f.sess, f.err
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (Session, error) {
	f.calls++
	return f.sess, f.err
}

type fakeStore struct {
	sess    Session
	has     bool
	loadErr error

	saves  int
	clears int
}

func (f *fakeStore) Load() (Session, bool, error) {
	if f.loadErr != nil {
		return Session{}, false, f.loadErr
	}
	return f.sess, f.has, nil
}

func (f *fakeStore) Save(s Session) error {
	f.saves++
	f.sess = s
	f.has = true
	return nil
}

func (f *fakeStore) Clear() error {
	f.clears++
	f.sess = Session{}
	f.has = false
	return nil
}

// testToken arma un JWT con forma válida (tres segmentos decodificables);
// la firma no se verifica del lado del cliente.
func testToken(t *testing.T) string {
	t.Helper()
	enc := base64.RawURLEncoding
	header := enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	claims := enc.EncodeToString([]byte(`{"sub":"u1","name":"Ana"}`))
	return header + "." + claims + "." + enc.EncodeToString([]byte("sig"))
}

func TestLogin_EmptyFieldsFailBeforeNetwork(t *testing.T) {
	api := &fakeAPI{}
	m := NewManager(api, &fakeStore{}, nil)

	_, err := m.Login(context.Background(), "", "secret")
	if !errors.Is(err, backend.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if api.calls != 0 {
		t.Fatalf("validation must fail before any network call, got %d calls", api.calls)
	}
}

func TestRegister_EmptyFieldsFailBeforeNetwork(t *testing.T) {
	api := &fakeAPI{}
	m := NewManager(api, &fakeStore{}, nil)

	_, err := m.Register(context.Background(), "Ana", "", "secret")
	if !errors.Is(err, backend.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if api.calls != 0 {
		t.Fatalf("validation must fail before any network call, got %d calls", api.calls)
	}
}

func TestLogin_PersistsSession(t *testing.T) {
	tok := testToken(t)
	api := &fakeAPI{sess: Session{Name: "Ana", Email: "ana@x.com", Token: tok}}
	store := &fakeStore{}
	m := NewManager(api, store, nil)

	sess, err := m.Login(context.Background(), "ana@x.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token != tok {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if store.saves != 1 {
		t.Fatalf("expected session persisted once, got %d", store.saves)
	}

	got, ok := m.Current()
	if !ok || got.Email != "ana@x.com" {
		t.Fatalf("expected current session after login, got ok=%v %+v", ok, got)
	}
}

func TestLogin_BackendFailureDoesNotPersist(t *testing.T) {
	api := &fakeAPI{err: backend.Wrap(backend.ErrAuth, "Credenciais inválidas")}
	store := &fakeStore{}
	m := NewManager(api, store, nil)

	_, err := m.Login(context.Background(), "ana@x.com", "wrong")
	if !errors.Is(err, backend.ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("failed login must not persist session")
	}
}

func TestCurrent_MalformedTokenPurges(t *testing.T) {
	store := &fakeStore{sess: Session{Name: "Ana", Token: "no-es-un-jwt"}, has: true}
	m := NewManager(&fakeAPI{}, store, nil)

	_, ok := m.Current()
	if ok {
		t.Fatalf("malformed token must read as absent")
	}
	if store.clears == 0 {
		t.Fatalf("malformed token must purge the slot")
	}
}

func TestCurrent_CorruptSlotPurges(t *testing.T) {
	store := &fakeStore{loadErr: backend.Wrap(backend.ErrCorruptSession, "")}
	m := NewManager(&fakeAPI{}, store, nil)

	_, ok := m.Current()
	if ok {
		t.Fatalf("corrupt slot must read as absent")
	}
	if store.clears == 0 {
		t.Fatalf("corrupt slot must be purged")
	}
}

func TestToken_AbsentSessionIsErrAuth(t *testing.T) {
	m := NewManager(&fakeAPI{}, &fakeStore{}, nil)

	_, err := m.Token(context.Background())
	if !errors.Is(err, backend.ErrAuth) {
		t.Fatalf("expected ErrAuth without session, got %v", err)
	}
}

func TestLogout_IsIdempotent(t *testing.T) {
	store := &fakeStore{sess: Session{Token: testToken(t)}, has: true}
	m := NewManager(&fakeAPI{}, store, nil)

	m.Logout()
	m.Logout() // sin sesión: también ok

	if store.has {
		t.Fatalf("logout must clear the slot")
	}
	if _, ok := m.Current(); ok {
		t.Fatalf("no session expected after logout")
	}
}

func TestWellFormedToken(t *testing.T) {
	cases := []struct {
		name string
		tok  string
		want bool
	}{
		{"valid", testToken(t), true},
		{"empty", "", false},
		{"two segments", "aaa.bbb", false},
		{"four segments", "a.b.c.d", false},
		{"garbage segments", "no!.es!.jwt", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WellFormedToken(tc.tok); got != tc.want {
				t.Fatalf("WellFormedToken(%q) = %v, want %v", tc.tok, got, tc.want)
			}
		})
	}
}
