// Package web hosts the browser-facing commitment tracker: account signup
// and login, the dashboard, and the declare/resolve commitment flows.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/trothapp/troth/internal/platform/timeouts"
	"github.com/trothapp/troth/internal/storage"
	"github.com/trothapp/troth/internal/web/platform/httpx"
	"github.com/trothapp/troth/internal/web/platform/requestmeta"
	"github.com/trothapp/troth/internal/web/routepath"
	"github.com/trothapp/troth/internal/web/static"
)

// Config describes the inputs needed to run the web server.
type Config struct {
	HTTPAddr string
	// SecretKey signs browser session tokens. Rotating it signs every
	// outstanding login out.
	SecretKey string
	// TrustForwardedProto treats X-Forwarded-Proto as authoritative when
	// the service runs behind a TLS-terminating proxy.
	TrustForwardedProto bool
	Store               storage.Store
}

// Server hosts the commitment tracker HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      storage.Store
	sweepEvery time.Duration
	now        func() time.Time
}

type handler struct {
	store    storage.Store
	sessions *sessionManager
	policy   requestmeta.SchemePolicy
	now      func() time.Time
}

// NewHandler assembles the HTTP routes without the process wrapper.
//
// This is the test-oriented entrypoint: storage stays injectable while
// NewServer adds listening and graceful shutdown around the same handler.
func NewHandler(config Config) (http.Handler, error) {
	if strings.TrimSpace(config.SecretKey) == "" {
		return nil, errors.New("secret key is required")
	}
	if config.Store == nil {
		return nil, errors.New("store is required")
	}

	h := &handler{
		store:    config.Store,
		sessions: newSessionManager([]byte(config.SecretKey), config.Store, config.Store),
		policy:   requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto},
		now:      time.Now,
	}

	mux := http.NewServeMux()
	mux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(static.FS))))

	mux.HandleFunc(http.MethodGet+" "+routepath.Signup, h.handleSignupForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Signup, h.handleSignupSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLoginForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleLoginSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.Logout, h.handleLogout)

	mux.HandleFunc(http.MethodGet+" "+routepath.Dashboard, h.handleDashboard)
	mux.HandleFunc(http.MethodGet+" "+routepath.CommitmentsNew, h.handleCommitmentNewForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.CommitmentsNew, h.handleCommitmentNewSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.CommitmentResolvePattern, h.handleCommitmentResolveForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.CommitmentResolvePattern, h.handleCommitmentResolveSubmit)

	mux.HandleFunc(routepath.Health, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc(routepath.Root, h.handleRoot)

	return httpx.Chain(mux, httpx.RequestID(), httpx.RecoverPanic(), httpx.LogRequests()), nil
}

// NewServer builds a configured web server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(config)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		store:      config.Store,
		sweepEvery: timeouts.SessionSweep,
		now:        time.Now,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sweepExpiredSessions(sweepCtx)

	serveErr := make(chan error, 1)
	log.WithField("addr", s.httpAddr).Info("web server listening")
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the server's storage.
func (s *Server) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	return s.store.Close()
}

// sweepExpiredSessions purges lapsed web sessions on a fixed interval so
// abandoned logins do not accumulate in storage.
func (s *Server) sweepExpiredSessions(ctx context.Context) {
	ticker := time.NewTicker(s.sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.store.DeleteExpiredWebSessions(ctx, s.now().UTC())
			if err != nil {
				log.WithField("error", err).Error("failed to sweep expired web sessions")
				continue
			}
			if removed > 0 {
				log.WithField("removed", removed).Info("swept expired web sessions")
			}
		}
	}
}
