package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mrsyaban/bike-rental-analysis/config"
)

const serverType = "http-server"

// Server serves the dashboard over HTTP
type Server struct {
	config     config.ServerConfig
	httpServer *http.Server
}

func NewServer(serverConfig config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		config: serverConfig,
		httpServer: &http.Server{
			Addr:         ":" + serverConfig.Port,
			Handler:      handler,
			ReadTimeout:  time.Duration(serverConfig.ReadTimeoutSeconds) * time.Second,
			WriteTimeout: time.Duration(serverConfig.WriteTimeoutSeconds) * time.Second,
		},
	}
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", serverType, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", serverType, method, message)
}

// Run blocks until the server fails or Shutdown is called. A shutdown is not an error
func (s *Server) Run() error {
	log.Info(getLogMessage("Run", fmt.Sprintf("listening on %s", s.httpServer.Addr), nil))

	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(getLogMessage("Run", "error serving", err))
		return err
	}
	return nil
}

// Shutdown waits for the running requests until ctx is done
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		log.Error(getLogMessage("Shutdown", "error shutting down server", err))
		return err
	}

	log.Info(getLogMessage("Shutdown", "server stopped", nil))
	return nil
}
