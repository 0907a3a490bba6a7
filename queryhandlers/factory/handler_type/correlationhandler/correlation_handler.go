package correlationhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mrsyaban/bike-rental-analysis/domain/business/queryresponse"
	"github.com/mrsyaban/bike-rental-analysis/pipeline"
)

const (
	queryID      = "4"
	handlerType  = "correlation-handler"
	responseType = "correlation"
)

type CorrelationHandler struct{}

func NewCorrelationHandler() *CorrelationHandler {
	return &CorrelationHandler{}
}

func (ch *CorrelationHandler) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[handler: %s][query: %s][method: %s][status: ERROR] %s: %s", handlerType, queryID, method, message, err.Error())
	}
	return fmt.Sprintf("[handler: %s][query: %s][method: %s][status: OK] %s", handlerType, queryID, method, message)
}

func (ch *CorrelationHandler) GetQueryID() string {
	return queryID
}

// GetType returns handler type
func (ch *CorrelationHandler) GetType() string {
	return handlerType
}

// GenerateResponse returns the correlation matrix as payload. NaN coefficients are encoded as null
func (ch *CorrelationHandler) GenerateResponse(result *pipeline.Result) (*queryresponse.QueryResponse, error) {
	if result == nil {
		return nil, fmt.Errorf("%s: nil pipeline result", handlerType)
	}

	message := fmt.Sprintf("%vx%v matrix over %v rows", result.Correlation.Size(), result.Correlation.Size(), len(result.Records))
	log.Debug(ch.getLogMessage("GenerateResponse", message, nil))

	queryResponse := queryresponse.NewQueryResponse(queryID, string(result.Request.Granularity), handlerType, responseType, message, result.Correlation)
	return queryResponse.WithFilter(result.Request.Interval, string(result.Request.UserType)), nil
}
