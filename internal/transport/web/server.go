package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/EgorLis/med-vault/internal/authgate"
	"github.com/EgorLis/med-vault/internal/config"
	"github.com/EgorLis/med-vault/internal/transport/web/mw"
	authv1 "github.com/EgorLis/med-vault/internal/transport/web/v1/auth"
	filesv1 "github.com/EgorLis/med-vault/internal/transport/web/v1/files"
	"github.com/EgorLis/med-vault/internal/transport/web/v1/health"
	profilev1 "github.com/EgorLis/med-vault/internal/transport/web/v1/profile"
	"github.com/EgorLis/med-vault/internal/vault"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, gate *authgate.Gateway, vlt *vault.Vault,
	authDeps mw.AuthDeps, db, cache, storage health.Pinger) *Server {

	authLog := log.New(logger.Writer(), logger.Prefix()+"[auth] ", logger.Flags())
	profileLog := log.New(logger.Writer(), logger.Prefix()+"[profile] ", logger.Flags())
	filesLog := log.New(logger.Writer(), logger.Prefix()+"[files] ", logger.Flags())
	healthLog := log.New(logger.Writer(), logger.Prefix()+"[health] ", logger.Flags())

	authHandler := &authv1.Handler{Log: authLog, Gate: gate}
	profileHandler := &profilev1.Handler{Log: profileLog, Gate: gate}
	filesHandler := &filesv1.Handler{Log: filesLog, Vault: vlt}
	healthHandler := &health.Handler{Log: healthLog, DB: db, Cache: cache, Storage: storage}

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(authHandler, profileHandler, filesHandler, healthHandler, authDeps, logger),
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
