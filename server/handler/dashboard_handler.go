package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/mrsyaban/bike-rental-analysis/charts"
	"github.com/mrsyaban/bike-rental-analysis/dataset"
	"github.com/mrsyaban/bike-rental-analysis/pipeline"
	"github.com/mrsyaban/bike-rental-analysis/publisher"
	"github.com/mrsyaban/bike-rental-analysis/queryhandlers/factory"
)

const (
	handlerName = "dashboard-handler"

	startParam       = "start"
	endParam         = "end"
	userTypeParam    = "user_type"
	granularityParam = "granularity"
	clampParam       = "clamp"
	formatParam      = "format"

	ViewVar  = "view"
	ChartVar = "chart"
)

var chartContentTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"svg":  "image/svg+xml",
	"pdf":  "application/pdf",
	"eps":  "application/postscript",
}

// DashboardHandlerConfig
// + Clamp: clamp value used when a request does not send one
// + Options: options applied to every pipeline run
type DashboardHandlerConfig struct {
	Clamp   bool
	Options []pipeline.Option
}

// DashboardHandler answers the HTTP requests of the dashboard. Every request runs the
// pipeline over the same read-only dataset, so the handler is safe for concurrent use
type DashboardHandler struct {
	config   DashboardHandlerConfig
	dataset  *dataset.Dataset
	handlers []factory.Handler
	renderer *charts.Renderer
}

func NewDashboardHandler(config DashboardHandlerConfig, ds *dataset.Dataset, handlers []factory.Handler, renderer *charts.Renderer) *DashboardHandler {
	return &DashboardHandler{
		config:   config,
		dataset:  ds,
		handlers: handlers,
		renderer: renderer,
	}
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[handler: %s][method: %s][status: ERROR] %s: %s", handlerName, method, message, err.Error())
	}
	return fmt.Sprintf("[handler: %s][method: %s][status: OK] %s", handlerName, method, message)
}

// Health reports that the server is up and how many records it serves
func (dh *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	hourly, daily := 0, 0
	if dh.dataset != nil {
		hourly, daily = len(dh.dataset.Hourly), len(dh.dataset.Daily)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"hourly_records": hourly,
		"daily_records":  daily,
	})
}

// Bounds returns the first and last date of the dataset, the limits of the date picker
func (dh *DashboardHandler) Bounds(w http.ResponseWriter, r *http.Request) {
	granularity, err := pipeline.ParseGranularity(r.URL.Query().Get(granularityParam))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	bounds, ok := pipeline.Bounds(dh.dataset, granularity)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("dataset has no %s records", granularity))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"granularity": granularity,
		"bounds":      bounds,
	})
}

// Dashboard returns every view for the filter in the query string
func (dh *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := dh.run(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	views, err := factory.GenerateResponses(dh.handlers, result)
	if err != nil {
		log.Error(getLogMessage("Dashboard", "error generating views", err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, publisher.NewSnapshot(result.Request, views))
}

// View returns a single view. The view name is the handler type without its suffix (daily, weather...)
func (dh *DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	view := mux.Vars(r)[ViewVar]
	viewHandler, found := dh.findHandler(factory.HandlerTypeFromView(view))
	if !found {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", factory.ErrInvalidHandlerType, view))
		return
	}

	result, err := dh.run(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	response, err := viewHandler.GenerateResponse(result)
	if err != nil {
		log.Error(getLogMessage("View", fmt.Sprintf("error generating view %s", view), err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// Chart renders a chart of the dashboard. The format query param defaults to png
func (dh *DashboardHandler) Chart(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)[ChartVar]

	format := strings.ToLower(r.URL.Query().Get(formatParam))
	if format == "" {
		format = charts.DefaultFormat
	}
	contentType, supported := chartContentTypes[format]
	if !supported {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported chart format: %s", format))
		return
	}

	result, err := dh.run(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var buffer bytes.Buffer
	err = dh.renderer.Render(&buffer, name, format, result)
	if errors.Is(err, charts.ErrUnknownChart) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		log.Error(getLogMessage("Chart", fmt.Sprintf("error rendering chart %s", name), err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := buffer.WriteTo(w); err != nil {
		log.Error(getLogMessage("Chart", "error writing chart", err))
	}
}

// ParseRequest reads the filter of the query string: start, end, user_type, granularity and clamp
func (dh *DashboardHandler) ParseRequest(r *http.Request) (pipeline.Request, error) {
	query := r.URL.Query()

	request, err := pipeline.ParseRequest(query.Get(startParam), query.Get(endParam), query.Get(userTypeParam), query.Get(granularityParam))
	if err != nil {
		return request, err
	}

	request.Clamp = dh.config.Clamp
	if rawClamp := query.Get(clampParam); rawClamp != "" {
		request.Clamp, err = strconv.ParseBool(rawClamp)
		if err != nil {
			return request, fmt.Errorf("invalid clamp value %q: %w", rawClamp, err)
		}
	}

	return request, nil
}

func (dh *DashboardHandler) run(r *http.Request) (*pipeline.Result, error) {
	request, err := dh.ParseRequest(r)
	if err != nil {
		log.Debug(getLogMessage("run", "invalid request", err))
		return nil, err
	}
	return pipeline.Run(dh.dataset, request, dh.config.Options...), nil
}

func (dh *DashboardHandler) findHandler(handlerType string) (factory.Handler, bool) {
	for _, viewHandler := range dh.handlers {
		if viewHandler.GetType() == handlerType {
			return viewHandler, true
		}
	}
	return nil, false
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error(getLogMessage("writeJSON", "error encoding response", err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
