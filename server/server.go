// Package server exposes the deployment pipeline over HTTP: deploy,
// validate-only, status lookup, and health probing.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/appforge-ci/deployer/generator"
	"github.com/appforge-ci/deployer/hosting"
	"github.com/appforge-ci/deployer/ledger"
	"github.com/appforge-ci/deployer/notifier"
	"github.com/appforge-ci/deployer/request"
)

const Version = "1.0.0"

type Opts struct {
	BindAddress string
	Secret      string
	Defaults    request.Defaults

	// Hosting may be nil when credentials are missing; deployments then
	// fail with HOSTING_UNAVAILABLE while validation keeps working.
	Hosting   hosting.Client
	Generator generator.Client
	Ledger    *ledger.Ledger
	Notifier  notifier.Notifier
}

type Server struct {
	log    *zap.Logger
	opts   Opts
	server *http.Server
}

func New(opts Opts) *Server {
	s := &Server{
		log:  zap.L().With(zap.String("facility", "server")),
		opts: opts,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/deploy", s.handleDeploy)
	mux.HandleFunc("/api/validate", s.handleValidate)
	mux.HandleFunc("/status/", s.handleStatus)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	// Deploys block for the full generation, publish and notification
	// chain. Generation can burn two 120s attempts and notification five
	// 30s attempts plus 31s of backoff before hosting is even reached, so
	// the write timeout has to sit well above that.
	s.server = &http.Server{
		Addr:              opts.BindAddress,
		Handler:           mux,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

func (s *Server) Run() error {
	s.log.Info("Listening", zap.String("bind_address", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routing table; used by the test suite.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// writeJSON encodes into an intermediate buffer so a marshalling failure
// never produces a partial response body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.log.Error("Failed encoding response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Error("Failed writing response body", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorResponse{Status: "error", Error: message, Code: code})
}
