package devserver

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"fisiomaster-admin/internal/adapters/storage"
	mem "fisiomaster-admin/internal/adapters/storage/memory"
	pg "fisiomaster-admin/internal/adapters/storage/postgres"
	"fisiomaster-admin/internal/domain/relatorios"
	"fisiomaster-admin/internal/platform/logger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Clave HS256 para firmar/verificar tokens. Default JWT_SECRET o
	// una clave fija de dev.
	JWTSecret string

	Log logger.Logger
}

type server struct {
	users         storage.UsersRepo
	pacientes     storage.PacientesRepo
	procedimentos storage.ProcedimentosRepo
	jwtSecret     []byte
	log           logger.Logger
}

// NewRouter arma el stand-in del backend FisiMaster: mismas rutas,
// mismos shapes de respuesta y misma guarda Bearer que la API real.
func NewRouter(opts Options) http.Handler {
	secret := opts.JWTSecret
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		secret = "fisiomaster-dev-secret"
	}

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	ownDB := false
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
				ownDB = true
			}
		}
	}

	log := opts.Log
	if log != nil {
		log = log.With(map[string]any{"component": "devserver"})
	}

	// Esquema idempotente antes de construir los repos: sin tablas, toda
	// query muere con "relation does not exist". Si no se puede asegurar,
	// caemos a memoria.
	if db != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := pg.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			if log != nil {
				log.Warn("postgres indisponible, usando memoria", map[string]any{"error": err.Error()})
			}
			if ownDB {
				_ = db.Close()
			}
			db = nil
		}
	}

	s := &server{jwtSecret: []byte(secret), log: log}
	if db != nil {
		s.users = pg.NewUsersRepo(db)
		s.pacientes = pg.NewPacientesRepo(db)
		s.procedimentos = pg.NewProcedimentosRepo(db)
	} else {
		s.users = mem.NewUsersRepo()
		s.pacientes = mem.NewPacientesRepo()
		s.procedimentos = mem.NewProcedimentosRepo()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	// El frontend real corre en otro origen; mismo CORS abierto que el
	// backend en Render.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// users/ queda fuera de la guarda: registro y login son abiertos.
	r.Route("/users", func(r chi.Router) {
		r.Post("/", s.registerHandler())
		r.Post("/login", s.loginHandler())
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth(s.jwtSecret))

		r.Route("/pacientes", func(r chi.Router) {
			r.Get("/", s.listPacientesHandler())
			r.Post("/", s.createPacienteHandler())
			r.Get("/{pacienteID}", s.getPacienteHandler())
			r.Put("/{pacienteID}", s.updatePacienteHandler())
			r.Delete("/{pacienteID}", s.deletePacienteHandler())
		})

		r.Route("/procedimentos", func(r chi.Router) {
			r.Get("/", s.listProcedimentosHandler())
			r.Post("/", s.createProcedimentoHandler())
			r.Get("/paciente/{pacienteID}", s.listProcedimentosByPacienteHandler())
			r.Get("/{procedimentoID}", s.getProcedimentoHandler())
			r.Put("/{procedimentoID}", s.updateProcedimentoHandler())
			r.Delete("/{procedimentoID}", s.deleteProcedimentoHandler())
		})

		r.Route("/relatorios", func(r chi.Router) {
			r.Get("/", s.relatorioHandler())
			r.Post("/email", s.emailRelatorioHandler(relatorios.ScopeCompleto))
			r.Post("/email/particular", s.emailRelatorioHandler(relatorios.ScopeParticular))
			r.Post("/email/plano-saude", s.emailRelatorioHandler(relatorios.ScopePlanoSaude))
			r.Get("/pdf", s.pdfRelatorioHandler())
		})
	})

	return r
}
