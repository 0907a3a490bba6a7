package summaryhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mrsyaban/bike-rental-analysis/domain/business/aggregate"
	"github.com/mrsyaban/bike-rental-analysis/domain/business/queryresponse"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/interval"
	"github.com/mrsyaban/bike-rental-analysis/pipeline"
)

const (
	queryID      = "5"
	handlerType  = "summary-handler"
	responseType = "summary"
)

// Response metric widgets of the dashboard
// + Bounds: first and last date available, used as limits of the date picker
// + Days: amount of distinct dates after filtering
type Response struct {
	Totals aggregate.Totals      `json:"totals"`
	Bounds interval.DateInterval `json:"bounds"`
	Days   int                   `json:"days"`
}

type SummaryHandler struct{}

func NewSummaryHandler() *SummaryHandler {
	return &SummaryHandler{}
}

func (sh *SummaryHandler) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[handler: %s][query: %s][method: %s][status: ERROR] %s: %s", handlerType, queryID, method, message, err.Error())
	}
	return fmt.Sprintf("[handler: %s][query: %s][method: %s][status: OK] %s", handlerType, queryID, method, message)
}

func (sh *SummaryHandler) GetQueryID() string {
	return queryID
}

// GetType returns handler type
func (sh *SummaryHandler) GetType() string {
	return handlerType
}

// GenerateResponse builds the totals of the filtered rows
func (sh *SummaryHandler) GenerateResponse(result *pipeline.Result) (*queryresponse.QueryResponse, error) {
	if result == nil {
		return nil, fmt.Errorf("%s: nil pipeline result", handlerType)
	}

	response := Response{
		Totals: result.Totals,
		Bounds: result.Bounds,
		Days:   result.Daily.Len(),
	}
	message := fmt.Sprintf("total users %v, casual %v, registered %v", result.Totals.Total, result.Totals.Casual, result.Totals.Registered)
	log.Debug(sh.getLogMessage("GenerateResponse", message, nil))

	queryResponse := queryresponse.NewQueryResponse(queryID, string(result.Request.Granularity), handlerType, responseType, message, response)
	return queryResponse.WithFilter(result.Request.Interval, string(result.Request.UserType)), nil
}
