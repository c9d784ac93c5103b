package rest

import (
	"fmt"
	"net/http"
	"time"
)

func Start(port string, h Handlers) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", h.PingHandler)
	mux.HandleFunc("GET /api/game", h.GameHandler)
	mux.HandleFunc("POST /api/game/turn", h.TurnHandler)
	mux.HandleFunc("POST /api/game/reset", h.ResetHandler)
	mux.HandleFunc("GET /api/game/analysis", h.AnalysisHandler)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
