// internal/wire/wire.go
package wire

import (
	"net/http"

	"erp-backend/internal/adaptor"
	"erp-backend/internal/data/repository"
	"erp-backend/internal/usecase"
	"erp-backend/pkg/middleware"
	"erp-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router.
func Wiring(repo *repository.Repository, config *utils.Config, deps usecase.Deps, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, deps, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, deps, config, logger),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, deps usecase.Deps, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.StripSlashes)
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))
	r.Use(middleware.Metrics)

	auth := middleware.AuthJWT(deps.Tokens, logger)
	admin := middleware.Admin(logger)

	wireAccount(r, handler.Account)
	wireUser(r, handler, auth, admin)
	wireReference(r, handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
