package web

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/EgorLis/med-vault/internal/docs"
	"github.com/EgorLis/med-vault/internal/domain"
	"github.com/EgorLis/med-vault/internal/transport/web/mw"
	authv1 "github.com/EgorLis/med-vault/internal/transport/web/v1/auth"
	filesv1 "github.com/EgorLis/med-vault/internal/transport/web/v1/files"
	"github.com/EgorLis/med-vault/internal/transport/web/v1/health"
	profilev1 "github.com/EgorLis/med-vault/internal/transport/web/v1/profile"
)

func newRouter(ah *authv1.Handler, ph *profilev1.Handler, fh *filesv1.Handler,
	hh *health.Handler, deps mw.AuthDeps, logger *log.Logger) http.Handler {

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /api/v1/healthz", hh.Liveness)
	mux.HandleFunc("GET /api/v1/readyz", hh.Readiness)

	// auth (без токена)
	mux.HandleFunc("POST /api/v1/auth/signup", ah.Signup)
	mux.HandleFunc("POST /api/v1/auth/login", ah.Login)
	mux.HandleFunc("DELETE /api/v1/auth/logout", ah.Logout)

	// profile (токен обязателен)
	mux.Handle("GET /api/v1/profile", mw.RequireAuth(deps, http.HandlerFunc(ph.Get)))
	mux.Handle("PUT /api/v1/profile",
		mw.RequireAuth(deps, limitBody(domain.MaxImageSize+1<<20, ph.Update)))

	// files (токен обязателен); лимит тела чуть выше 10 MiB,
	// чтобы ровно 10 MiB прошли, а превышение отбросил vault со своим 400
	mux.Handle("POST /api/v1/files",
		mw.RequireAuth(deps, limitBody(domain.MaxFileSize+1<<20, fh.Upload)))
	mux.Handle("GET /api/v1/files", mw.RequireAuth(deps, http.HandlerFunc(fh.List)))
	mux.Handle("DELETE /api/v1/files/{id}", mw.RequireAuth(deps, http.HandlerFunc(fh.Delete)))
	mux.Handle("GET /api/v1/files/{id}/download", mw.RequireAuth(deps, http.HandlerFunc(fh.Download)))

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware
	return mw.WithRequestID(mw.Recoverer(logger)(mw.Logging(logger)(mux)))
}

func limitBody(n int64, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	})
}
