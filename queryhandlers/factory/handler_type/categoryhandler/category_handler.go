package categoryhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mrsyaban/bike-rental-analysis/domain/business/aggregate"
	"github.com/mrsyaban/bike-rental-analysis/domain/business/queryresponse"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/weather"
	"github.com/mrsyaban/bike-rental-analysis/pipeline"
	"github.com/mrsyaban/bike-rental-analysis/pipeline/classifier"
)

const (
	queryID      = "3"
	handlerType  = "category-handler"
	responseType = "category"
)

// Response weather category view
// + Rules: criteria of each category, in evaluation order
// + Fallback: category of the rows that match no rule
type Response struct {
	Rules         []classifier.Rule        `json:"rules"`
	Fallback      weather.Category         `json:"fallback"`
	Averages      []aggregate.AverageRow   `json:"averages"`
	Distributions []aggregate.Distribution `json:"distributions"`
}

type CategoryHandler struct {
	classifier *classifier.Classifier
}

// NewCategoryHandler receives the classifier the pipeline ran with, nil means the default rules
func NewCategoryHandler(weatherClassifier *classifier.Classifier) *CategoryHandler {
	if weatherClassifier == nil {
		weatherClassifier = classifier.NewDefaultClassifier()
	}

	return &CategoryHandler{
		classifier: weatherClassifier,
	}
}

func (ch *CategoryHandler) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[handler: %s][query: %s][method: %s][status: ERROR] %s: %s", handlerType, queryID, method, message, err.Error())
	}
	return fmt.Sprintf("[handler: %s][query: %s][method: %s][status: OK] %s", handlerType, queryID, method, message)
}

func (ch *CategoryHandler) GetQueryID() string {
	return queryID
}

// GetType returns handler type
func (ch *CategoryHandler) GetType() string {
	return handlerType
}

// GenerateResponse builds the averages and box plot data per weather category
func (ch *CategoryHandler) GenerateResponse(result *pipeline.Result) (*queryresponse.QueryResponse, error) {
	if result == nil {
		return nil, fmt.Errorf("%s: nil pipeline result", handlerType)
	}

	response := Response{
		Rules:         ch.classifier.Rules(),
		Fallback:      ch.classifier.Fallback(),
		Averages:      result.CategoryAverages,
		Distributions: result.CategoryDistributions,
	}
	message := fmt.Sprintf("%v rows classified", len(result.Categories))
	log.Debug(ch.getLogMessage("GenerateResponse", message, nil))

	queryResponse := queryresponse.NewQueryResponse(queryID, string(result.Request.Granularity), handlerType, responseType, message, response)
	return queryResponse.WithFilter(result.Request.Interval, string(result.Request.UserType)), nil
}
