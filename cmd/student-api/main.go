// main is the entry point of the student management API.
//
// STARTUP SEQUENCE:
//  1. Load configuration (environment variables, optional YAML file)
//  2. Initialise the logger
//  3. Connect to the record store and create the students table
//  4. Register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	DB_DRIVER=memory go run ./cmd/student-api
//
// or against a local PostgreSQL with the default credentials:
//
//	go run ./cmd/student-api
//
// In a cluster the deployment injects DB_HOST, DB_NAME, DB_USER,
// DB_PASSWORD and DB_PORT; no config file is needed.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/student-mgmt/internal/config"
	"github.com/aanand-mishra/student-mgmt/internal/http/handlers/health"
	"github.com/aanand-mishra/student-mgmt/internal/http/handlers/student"
	"github.com/aanand-mishra/student-mgmt/internal/http/middleware"
	"github.com/aanand-mishra/student-mgmt/internal/storage"
	"github.com/aanand-mishra/student-mgmt/internal/storage/memory"
	"github.com/aanand-mishra/student-mgmt/internal/storage/postgres"
	"github.com/aanand-mishra/student-mgmt/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad reads env vars (and the YAML file, if given) and fatals
	// if anything is wrong. If it returns, config is guaranteed valid.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)

	log.Info("starting student-api",
		slog.String("env", cfg.Env),
		slog.String("db_driver", cfg.Database.Driver),
	)

	// ── 3. Initialise Storage (Record Store) ──────────────────────────────
	// The rest of the code only knows the storage.Storage interface —
	// which backend serves it is decided here and nowhere else.
	//
	// An unreachable record store is fatal: better a clear startup
	// error (and a crash-loop the orchestrator can see) than a service
	// that accepts traffic it cannot serve.
	st, err := newStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer st.Close()

	log.Info("storage initialised", slog.String("driver", cfg.Database.Driver))

	// ── 4. Register HTTP Routes ───────────────────────────────────────────
	// The handler factories (student.New, student.GetList, …) receive
	// the storage once at startup and return the actual handlers.
	//
	// Route table:
	//   GET    /health               → liveness probe (no DB dependency)
	//   POST   /api/students         → create a new student
	//   GET    /api/students         → list all students
	//   GET    /api/students/{id}    → get one student by ID
	//   PUT    /api/students/{id}    → replace a student's mutable fields
	//   DELETE /api/students/{id}    → delete a student
	router := http.NewServeMux()

	router.HandleFunc("GET /health", health.Check())
	router.HandleFunc("POST /api/students", student.New(st, log))
	router.HandleFunc("GET /api/students", student.GetList(st, log))
	router.HandleFunc("GET /api/students/{id}", student.GetByID(st, log))
	router.HandleFunc("PUT /api/students/{id}", student.Update(st, log))
	router.HandleFunc("DELETE /api/students/{id}", student.Delete(st, log))

	handler := middleware.RequestLogger(log)(router)

	// ── 5. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: handler,

		// Timeouts prevent slow clients from pinning connections forever.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe blocks, so it runs in its own goroutine and the
	// main goroutine waits for a shutdown signal below.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown()
		// is called. That's expected — not an error worth logging.
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	// Buffered so the signal isn't missed if main is briefly busy.
	//   os.Interrupt  = Ctrl+C (SIGINT)
	//   syscall.SIGTERM = sent by `kill <pid>` or container orchestrators
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	// Shutdown stops accepting new connections and waits for active
	// requests to complete, up to a 5-second deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// newStorage builds the record store backend selected by DB_DRIVER.
func newStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		return sqlite.New(cfg)
	case "memory":
		return memory.New(), nil
	default: // "postgres" and anything unrecognised
		return postgres.New(context.Background(), cfg)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level —
// easy to ingest by log aggregators (Loki, CloudWatch, etc.)
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
