// Package scoreserver is a small HTTP service that collects reported scores.
//
// Routes:
//
//	GET  /scores       all scores, ordered by id
//	POST /scores       store {"score": n}, reply 201 with {"id": n, "score": n}
//	GET  /scores/live  websocket feed of newly stored scores
package scoreserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"

	"github.com/vovakirdan/block-breaker/internal/storage"
)

// DefaultAddr matches the default report URL.
const DefaultAddr = "127.0.0.1:5000"

const (
	maxBodyBytes    = 1 << 12
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Store persists submitted scores.
type Store interface {
	SubmitScore(score int) (storage.Submission, error)
	Submissions() ([]storage.Submission, error)
}

// Server handles score submissions and the live feed.
type Server struct {
	store  Store
	hub    *hub
	logger *log.Logger
}

// New creates a score server backed by store. A nil logger uses the package
// default logger.
func New(store Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:  store,
		hub:    newHub(),
		logger: logger.WithPrefix("scoreserver"),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /scores", s.handleList)
	mux.HandleFunc("POST /scores", s.handleSubmit)
	mux.HandleFunc("GET /scores/live", s.handleLive)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("scoreserver: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Stopping server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("scoreserver: shutdown: %w", err)
	}
	return nil
}

type submitRequest struct {
	Score *int `json:"score"`
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	subs, err := s.store.Submissions()
	if err != nil {
		s.logger.Error("Failed to list scores", "err", err)
		writeError(w, http.StatusInternalServerError, "cannot list scores")
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Score == nil {
		writeError(w, http.StatusBadRequest, "missing score")
		return
	}

	sub, err := s.store.SubmitScore(*req.Score)
	if err != nil {
		s.logger.Error("Failed to store score", "score", *req.Score, "err", err)
		writeError(w, http.StatusInternalServerError, "cannot store score")
		return
	}

	s.logger.Info("Score received", "id", sub.ID, "score", sub.Score, "remote", r.RemoteAddr)

	if msg, err := json.Marshal(sub); err == nil {
		s.hub.publish(msg)
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.logger.Debug("Websocket accept failed", "err", err)
		return
	}
	defer conn.CloseNow() //nolint:errcheck

	// The feed is write-only; CloseRead handles control frames and cancels
	// ctx when the client goes away.
	ctx := conn.CloseRead(r.Context())

	ch := s.hub.subscribe()
	defer s.hub.unsubscribe(ch)
	s.logger.Debug("Live subscriber joined", "remote", r.RemoteAddr, "subscribers", s.hub.count())

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Live subscriber left", "remote", r.RemoteAddr)
			return
		case msg := <-ch:
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				s.logger.Debug("Live write failed", "remote", r.RemoteAddr, "err", err)
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
