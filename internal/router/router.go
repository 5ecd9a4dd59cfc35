package router

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/wickenico/plantos/docs"
	mem "github.com/wickenico/plantos/internal/adapters/storage/memory"
	pg "github.com/wickenico/plantos/internal/adapters/storage/postgres"
	sqlitestore "github.com/wickenico/plantos/internal/adapters/storage/sqlite"
	"github.com/wickenico/plantos/internal/domain/plants"
	"github.com/wickenico/plantos/internal/middleware"
	"github.com/wickenico/plantos/internal/platform/logger"
	"github.com/wickenico/plantos/internal/platform/metrics"
	"github.com/wickenico/plantos/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev: X-Debug-User-ID)

	// Opcional: si viene, usa esta conexión. Si no, resuelve por env:
	// DB_DSN => Postgres, DB_PATH => SQLite, nada => in-memory.
	DB *sql.DB

	Log logger.Logger // nil => logger desde env
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var plantsRepo plants.Repository

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres open failed, falling back", map[string]any{"err": err.Error()})
			}
		}
	}

	switch {
	case db != nil:
		plantsRepo = pg.NewPlantsRepo(db)
	case os.Getenv("DB_PATH") != "":
		sdb, err := sqlitestore.Open(os.Getenv("DB_PATH"))
		if err != nil {
			log.Warn("sqlite open failed, falling back to memory", map[string]any{"err": err.Error()})
			plantsRepo = mem.NewPlantsRepo()
		} else {
			plantsRepo = sqlitestore.NewPlantsRepo(sdb)
		}
	default:
		plantsRepo = mem.NewPlantsRepo()
	}

	plantsSvc := plants.NewService(plantsRepo, log)

	// Refresco advisory del listado tras cada mutación: contadores y un log
	// de debug. Nunca transaccional con el write.
	plantsSvc.SetRefreshHook(func(op, ownerUserID string) {
		metrics.PlantMutations.WithLabelValues(op).Inc()
		metrics.ListRefreshes.Inc()
		log.Debug("list view refresh", map[string]any{"op": op, "owner": ownerUserID})
	})

	plants.RegisterRoutes(r, plantsSvc)

	return r
}
