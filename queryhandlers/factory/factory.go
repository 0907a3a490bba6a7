package factory

import (
	"fmt"

	"github.com/mrsyaban/bike-rental-analysis/domain/business/queryresponse"
	"github.com/mrsyaban/bike-rental-analysis/pipeline"
	"github.com/mrsyaban/bike-rental-analysis/pipeline/classifier"
	"github.com/mrsyaban/bike-rental-analysis/queryhandlers/factory/handler_type/categoryhandler"
	"github.com/mrsyaban/bike-rental-analysis/queryhandlers/factory/handler_type/correlationhandler"
	"github.com/mrsyaban/bike-rental-analysis/queryhandlers/factory/handler_type/dailyhandler"
	"github.com/mrsyaban/bike-rental-analysis/queryhandlers/factory/handler_type/summaryhandler"
	"github.com/mrsyaban/bike-rental-analysis/queryhandlers/factory/handler_type/weatherhandler"
)

const (
	SummaryHandlerType     = "summary-handler"
	DailyHandlerType       = "daily-handler"
	WeatherHandlerType     = "weather-handler"
	CategoryHandlerType    = "category-handler"
	CorrelationHandlerType = "correlation-handler"

	handlerSuffix = "-handler"
)

// Handler builds one view of the dashboard out of a pipeline result
type Handler interface {
	GetQueryID() string
	GetType() string
	GenerateResponse(result *pipeline.Result) (*queryresponse.QueryResponse, error)
}

// HandlerTypes returns every handler type in dashboard order
func HandlerTypes() []string {
	return []string{
		SummaryHandlerType,
		DailyHandlerType,
		WeatherHandlerType,
		CategoryHandlerType,
		CorrelationHandlerType,
	}
}

// HandlerTypeFromView maps a view name (daily, weather...) to its handler type
func HandlerTypeFromView(view string) string {
	return view + handlerSuffix
}

// NewQueryHandler returns the handler of handlerType. weatherClassifier is only used by
// the category handler, nil means the default rules
func NewQueryHandler(handlerType string, weatherClassifier *classifier.Classifier) (Handler, error) {
	switch handlerType {
	case SummaryHandlerType:
		return summaryhandler.NewSummaryHandler(), nil
	case DailyHandlerType:
		return dailyhandler.NewDailyHandler(), nil
	case WeatherHandlerType:
		return weatherhandler.NewWeatherHandler(), nil
	case CategoryHandlerType:
		return categoryhandler.NewCategoryHandler(weatherClassifier), nil
	case CorrelationHandlerType:
		return correlationhandler.NewCorrelationHandler(), nil
	}

	return nil, fmt.Errorf("[method: NewQueryHandler][status: error] %w: %s", ErrInvalidHandlerType, handlerType)
}

// NewQueryHandlers returns one handler per type in HandlerTypes order
func NewQueryHandlers(weatherClassifier *classifier.Classifier) []Handler {
	handlers := make([]Handler, 0, len(HandlerTypes()))
	for _, handlerType := range HandlerTypes() {
		handler, err := NewQueryHandler(handlerType, weatherClassifier)
		if err != nil {
			panic(err)
		}
		handlers = append(handlers, handler)
	}
	return handlers
}

// GenerateResponses runs every handler over result and returns the responses keyed by handler type
func GenerateResponses(handlers []Handler, result *pipeline.Result) (map[string]*queryresponse.QueryResponse, error) {
	responses := make(map[string]*queryresponse.QueryResponse, len(handlers))
	for _, handler := range handlers {
		response, err := handler.GenerateResponse(result)
		if err != nil {
			return nil, err
		}
		responses[handler.GetType()] = response
	}
	return responses, nil
}
