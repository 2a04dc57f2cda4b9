package httpserver

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"leaflethub/internal/auth"
	"leaflethub/internal/records"
)

func NewRouter(
	logger *slog.Logger,
	authSvc *auth.Service,
	recordStore *records.Store,
	baseURL string,
) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Auth
	mux.Handle("/api/v1/auth/register", &auth.RegisterHandler{Service: authSvc, Logger: logger})
	mux.Handle("/api/v1/auth/login", &auth.LoginHandler{Service: authSvc, Logger: logger})

	// Records. Every record operation sits behind token verification.
	secured := auth.JWTMiddleware(authSvc)

	collection := &records.CollectionHandler{
		Store:  recordStore,
		Logger: logger,
	}
	detail := &records.DetailHandler{
		Store:   recordStore,
		Logger:  logger,
		BaseURL: baseURL,
	}
	mux.Handle("/api/v1/records", secured(collection))
	mux.Handle("/api/v1/records/", secured(detail))

	// CORS wrapper (simple, for the local dashboard).
	return withCORS(withRequestLog(logger, withTimeout(mux)))
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
