package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/mrsyaban/bike-rental-analysis/server/handler"
)

const apiPrefix = "/api/v1"

// RouteManager maps the dashboard endpoints to the dashboard handler
type RouteManager struct {
	Router           *mux.Router
	dashboardHandler *handler.DashboardHandler
	allowedOrigins   []string
}

func NewRouteManager(dashboardHandler *handler.DashboardHandler, allowedOrigins []string) *RouteManager {
	return &RouteManager{
		Router:           mux.NewRouter(),
		dashboardHandler: dashboardHandler,
		allowedOrigins:   allowedOrigins,
	}
}

// Setup registers every route and returns the router
func (rm *RouteManager) Setup() *mux.Router {
	r := rm.Router
	r.Use(rm.loggingMiddleware)
	r.Use(rm.corsMiddleware)

	r.HandleFunc("/health", rm.dashboardHandler.Health).Methods(http.MethodGet, http.MethodOptions)

	// api routes stay on the root router so a wrong method answers 405
	r.HandleFunc(apiPrefix+"/bounds", rm.dashboardHandler.Bounds).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc(apiPrefix+"/dashboard", rm.dashboardHandler.Dashboard).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc(fmt.Sprintf("%s/views/{%s}", apiPrefix, handler.ViewVar), rm.dashboardHandler.View).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc(fmt.Sprintf("%s/charts/{%s}", apiPrefix, handler.ChartVar), rm.dashboardHandler.Chart).Methods(http.MethodGet, http.MethodOptions)

	return r
}

func (rm *RouteManager) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug(getLogMessage("ServeHTTP", fmt.Sprintf("%s %s served in %s", r.Method, r.URL.RequestURI(), time.Since(start)), nil))
	})
}

// corsMiddleware only sets Access-Control-Allow-Origin for the configured origins
func (rm *RouteManager) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			for _, allowed := range rm.allowedOrigins {
				if allowed == "*" || allowed == origin {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
