package utils

import (
	"net/http"

	"github.com/gorilla/mux"

	"aniflux/api"
)

// NewRouter constructs the base mux router with CORS, request logging
// and the health route the front end polls on startup.
func NewRouter() *mux.Router {
	r := mux.NewRouter()

	r.Use(corsMiddleware)
	r.Use(api.LoggingMiddleware)

	// Preflight requests need a matching route for the middleware chain
	// to run at all.
	r.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
	return r
}
