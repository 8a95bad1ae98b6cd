// ABOUTME: HTTP server issuing room access tokens to frontend clients
// ABOUTME: Mux router with request logging and a health endpoint
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Config holds the token server's settings.
type Config struct {
	Addr      string
	APIKey    string
	APISecret string
	TokenTTL  time.Duration
}

// Server issues room access tokens over HTTP.
type Server struct {
	cfg    Config
	router *mux.Router
}

// NewServer builds the router. Routes: GET /getToken, GET /health.
func NewServer(cfg Config) *Server {
	s := &Server{cfg: cfg}

	r := mux.NewRouter()
	r.Use(loggingMiddleware)
	r.HandleFunc("/getToken", s.handleGetToken).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router = r

	return s
}

// Handler returns the root handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving requests on the configured address.
func (s *Server) ListenAndServe() error {
	log.Printf("token server listening on %s", s.cfg.Addr)
	server := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return server.ListenAndServe()
}

// handleGetToken issues a token for the requested identity, generating a
// fresh room name when none is supplied.
func (s *Server) handleGetToken(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "my name"
	}
	room := r.URL.Query().Get("room")
	if room == "" {
		room = newRoomName()
	}

	token, err := IssueToken(s.cfg.APIKey, s.cfg.APISecret, name, room, s.cfg.TokenTTL)
	if err != nil {
		log.Printf("token issue failed: %v", err)
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(token))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func newRoomName() string {
	return "room-" + uuid.NewString()[:8]
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
