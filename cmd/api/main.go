package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/wickenico/plantos/internal/adapters/auth/localjwt"
	"github.com/wickenico/plantos/internal/adapters/auth/stack"
	"github.com/wickenico/plantos/internal/platform/logger"
	"github.com/wickenico/plantos/internal/ports/auth"
	"github.com/wickenico/plantos/internal/router"
)

// @title PlantOS API
// @version 1.0
// @description Inventario personal de plantas: CRUD owner-scoped con búsqueda y slugs.
// @BasePath /
func main() {
	// .env es opcional; en prod todo llega por env real.
	_ = godotenv.Load()

	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	verifier, mode := buildVerifier(log)

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Log:          log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr, "auth_mode": mode})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}

// buildVerifier arma el verifier según AUTH_MODE:
// - "stack": proveedor de sesión hosteado (AUTH_STACK_URL, AUTH_STACK_PROJECT_ID)
// - "jwt":   tokens HS256 propios (AUTH_JWT_SECRET)
// - "dev" o vacío: sin verifier, identidad por X-Debug-User-ID
func buildVerifier(log logger.Logger) (auth.AuthVerifier, string) {
	mode := os.Getenv("AUTH_MODE")

	switch mode {
	case "stack":
		timeout := 5 * time.Second
		if ms, err := strconv.Atoi(os.Getenv("AUTH_STACK_TIMEOUT_MS")); err == nil && ms > 0 {
			timeout = time.Duration(ms) * time.Millisecond
		}
		client, err := stack.NewClient(stack.Config{
			BaseURL:   os.Getenv("AUTH_STACK_URL"),
			ProjectID: os.Getenv("AUTH_STACK_PROJECT_ID"),
			Timeout:   timeout,
		})
		if err != nil {
			log.Error("stack auth misconfigured", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		return stack.NewVerifier(client), mode

	case "jwt":
		v, err := localjwt.NewVerifier(os.Getenv("AUTH_JWT_SECRET"))
		if err != nil {
			log.Error("jwt auth misconfigured", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		return v, mode

	default:
		return nil, "dev"
	}
}
