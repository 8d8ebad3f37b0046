package main

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"smart-task-analyzer/internal/config"
	"smart-task-analyzer/internal/engine"
	"smart-task-analyzer/internal/logging"
	"smart-task-analyzer/internal/middleware"
	"smart-task-analyzer/internal/tasks"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.Debug)

	eng := engine.New()

	mux := http.NewServeMux()

	// Health endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// ----- TASKS API -----
	mux.HandleFunc("/api/tasks/analyze", postOnly(tasks.AnalyzeHandler(eng)))
	mux.HandleFunc("/api/tasks/suggest", postOnly(tasks.SuggestHandler(eng)))
	mux.HandleFunc("/api/tasks/validate", postOnly(tasks.ValidateHandler(eng)))

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	handler := middleware.RequestLogger(c.Handler(mux))

	log.Info().Msgf("🚀 API server is running on %s", cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), handler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func postOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
