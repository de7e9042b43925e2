// Package httpapi exposes the playlist and profile over a small JSON API so a
// UI layer running in another process can drive them.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/hay-kot/setlist/internal/setlist"
)

// Server serves the JSON API.
type Server struct {
	playlist *setlist.Playlist
	profiles *setlist.ProfileService
	log      zerolog.Logger
}

// New returns a Server backed by the given services.
func New(playlist *setlist.Playlist, profiles *setlist.ProfileService, log zerolog.Logger) *Server {
	return &Server{
		playlist: playlist,
		profiles: profiles,
		log:      log.With().Str("component", "http").Logger(),
	}
}

// Handler returns the router with all routes and middleware installed.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	r.HandleFunc("/songs", s.listSongs).Methods(http.MethodGet)
	r.HandleFunc("/songs", s.addSong).Methods(http.MethodPost)
	r.HandleFunc("/songs", s.clearSongs).Methods(http.MethodDelete)
	r.HandleFunc("/songs/{id}", s.removeSong).Methods(http.MethodDelete)
	r.HandleFunc("/undo", s.undo).Methods(http.MethodPost)
	r.HandleFunc("/redo", s.redo).Methods(http.MethodPost)

	r.HandleFunc("/profile", s.getProfile).Methods(http.MethodGet)
	r.HandleFunc("/profile", s.putProfile).Methods(http.MethodPut)
	r.HandleFunc("/profile/submit", s.submitProfile).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Wrapped outside the router so unmatched routes get a request ID too.
	return s.requestID(s.logRequests(r))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	s.log.Info().Msg("server stopped")
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
