package core

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-pkgz/routegroup"

	"github.com/tkrause/expense-portal/internal"
	"github.com/tkrause/expense-portal/internal/app/api/core/middleware/cors"
	"github.com/tkrause/expense-portal/internal/app/api/core/middleware/logging"
	"github.com/tkrause/expense-portal/internal/app/api/core/middleware/recovery"
	"github.com/tkrause/expense-portal/internal/app/api/core/middleware/tracing"
	"github.com/tkrause/expense-portal/internal/app/api/core/respond"
	"github.com/tkrause/expense-portal/internal/config"
)

const (
	RequestIDKey = "X-Request-ID"
)

type ApiVersion string
type HandlerName string

type GroupSetupFn func(group *routegroup.Bundle)

type ApiEndpointSetupFunc func() (ApiVersion, GroupSetupFn)

type Server struct {
	cfg      *config.Config
	server   *routegroup.Bundle
	versions map[ApiVersion]*routegroup.Bundle
}

func NewServer(cfg *config.Config, endpoints ...ApiEndpointSetupFunc) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		server: routegroup.New(http.NewServeMux()),
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "apiserver"
	}
	hostname += ", version " + internal.Version

	s.server.Use(recovery.New(
		recovery.WithContextRequestId(tracing.RequestId),
	).Handler)
	if cfg.Web.RequestLogging {
		s.server.Use(logging.New(
			logging.WithLevel(logging.LogLevelDebug),
			logging.WithContextRequestId(tracing.RequestId),
		).Handler)
	}
	s.server.Use(cors.New().Handler)
	s.server.Use(tracing.New(
		tracing.WithHeaderIdentifier(RequestIDKey),
		tracing.WithUpstreamHeader(RequestIDKey),
	).Handler)
	if cfg.Web.ExposeHostInfo {
		s.server.Use(func(handler http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Served-By", hostname)
				handler.ServeHTTP(w, r)
			})
		})
	}

	s.setupRoutes(endpoints...)

	return s, nil
}

func (s *Server) Run(ctx context.Context, listenAddress string) {
	srv := &http.Server{
		Addr:    listenAddress,
		Handler: s.server,
	}

	srvContext, cancelFn := context.WithCancel(ctx)
	go func() {
		var err error
		slog.Debug("starting server", "certFile", s.cfg.Web.CertFile, "keyFile", s.cfg.Web.KeyFile)
		if s.cfg.Web.CertFile != "" && s.cfg.Web.KeyFile != "" {
			err = srv.ListenAndServeTLS(s.cfg.Web.CertFile, s.cfg.Web.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil {
			slog.Info("web service exited", "address", listenAddress, "error", err)
			cancelFn()
		}
	}()
	slog.Info("started web service", "address", listenAddress)

	// Wait for the main context to end
	<-srvContext.Done()

	slog.Debug("web service shutting down, grace period: 5 seconds")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	slog.Debug("web service shut down")
}

func (s *Server) setupRoutes(endpoints ...ApiEndpointSetupFunc) {
	s.server.HandleFunc("GET /api", s.landingPage)
	s.versions = make(map[ApiVersion]*routegroup.Bundle)

	for _, setupFunc := range endpoints {
		version, groupSetupFn := setupFunc()

		if _, ok := s.versions[version]; !ok {
			s.versions[version] = s.server.Mount(fmt.Sprintf("/api/%s", version))

			groupSetupFn(s.versions[version])
		}
	}
}

func (s *Server) landingPage(w http.ResponseWriter, _ *http.Request) {
	versions := make([]string, 0, len(s.versions))
	for version := range s.versions {
		versions = append(versions, fmt.Sprintf("/api/%s", version))
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"name":     "expense-portal",
		"version":  internal.Version,
		"versions": versions,
	})
}
