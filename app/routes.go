package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mytheresa/category-admin/app/admin"
	"github.com/mytheresa/category-admin/app/categories"
	"github.com/mytheresa/category-admin/app/middleware"
	"go.uber.org/zap"
)

// NewAdminRouter wires the admin pages.
func NewAdminRouter(h *admin.Handler, log *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover(log), middleware.Logging(log))

	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.Handle("/", http.RedirectHandler("/categories", http.StatusFound)).Methods(http.MethodGet)

	r.HandleFunc("/categories", h.HandleList).Methods(http.MethodGet)
	r.HandleFunc("/categories/new", h.HandleNewForm).Methods(http.MethodGet)
	r.HandleFunc("/categories/new", h.HandleCreate).Methods(http.MethodPost)
	r.HandleFunc("/categories/{id:[0-9]+}/edit", h.HandleEditForm).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id:[0-9]+}/edit", h.HandleUpdate).Methods(http.MethodPost)
	r.HandleFunc("/categories/{id:[0-9]+}/delete", h.HandleDelete).Methods(http.MethodPost)

	return middleware.Tracing("admin")(middleware.ServerTiming(r))
}

// NewAPIRouter wires the categories REST API.
func NewAPIRouter(h *categories.CategoryHandler, log *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover(log), middleware.Logging(log))

	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)

	r.HandleFunc("/api/categories", h.HandleGetAll).Methods(http.MethodGet)
	r.HandleFunc("/api/categories", h.HandleCreate).Methods(http.MethodPost)
	r.HandleFunc("/api/categories/{id:[0-9]+}", h.HandleGet).Methods(http.MethodGet)
	r.HandleFunc("/api/categories/{id:[0-9]+}", h.HandleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/api/categories/{id:[0-9]+}", h.HandleDelete).Methods(http.MethodDelete)

	return middleware.Tracing("api")(r)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
