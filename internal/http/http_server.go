package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/skillsnap.net/internal/core/ports/primary"
	"gitlab.com/skillsnap.net/internal/core/services/pipeline"
	"gitlab.com/skillsnap.net/internal/handlers"
	"gitlab.com/skillsnap.net/internal/handlers/certificates"
)

type ServiceProvider struct {
	pipelineService pipeline.IPipelineService
}

func NewServiceProvider(pipelineService pipeline.IPipelineService) *ServiceProvider {
	return &ServiceProvider{
		pipelineService: pipelineService,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.pipelineService == nil {
		return errors.New("pipeline service is required")
	}

	r := mux.NewRouter()
	middleware := handlers.New(s.logger)
	r.Use(middleware.Recover, middleware.LogRequests, middleware.CORS)

	handlers.NewSystemHandler(s.ServiceProvider.pipelineService, s.logger).RegisterRoutes(r)
	certificates.NewHandler(s.ServiceProvider.pipelineService, s.logger).RegisterRoutes(r)
	s.router = r
	return nil
}

// Handler exposes the router for in-process tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves in the background. The write timeout leaves room for a full run plus audit.
func (s *Server) Start(ctx context.Context) {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
		}
	}()
}

// Stop drains in-flight requests until ctx expires
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
