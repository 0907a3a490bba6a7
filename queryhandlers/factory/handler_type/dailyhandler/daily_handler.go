package dailyhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mrsyaban/bike-rental-analysis/domain/business/aggregate"
	"github.com/mrsyaban/bike-rental-analysis/domain/business/queryresponse"
	"github.com/mrsyaban/bike-rental-analysis/pipeline"
)

const (
	queryID      = "1"
	handlerType  = "daily-handler"
	responseType = "daily"
)

// Response working day impact view
// + Series: sums per (date, working day) with the three ridership columns
// + Selected: the same series projected on the selected user type
type Response struct {
	Series   aggregate.WorkingDaySeries `json:"series"`
	Selected aggregate.UserSeries       `json:"selected"`
}

type DailyHandler struct{}

func NewDailyHandler() *DailyHandler {
	return &DailyHandler{}
}

func (dh *DailyHandler) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[handler: %s][query: %s][method: %s][status: ERROR] %s: %s", handlerType, queryID, method, message, err.Error())
	}
	return fmt.Sprintf("[handler: %s][query: %s][method: %s][status: OK] %s", handlerType, queryID, method, message)
}

func (dh *DailyHandler) GetQueryID() string {
	return queryID
}

// GetType returns handler type
func (dh *DailyHandler) GetType() string {
	return handlerType
}

// GenerateResponse builds the working day impact view
func (dh *DailyHandler) GenerateResponse(result *pipeline.Result) (*queryresponse.QueryResponse, error) {
	if result == nil {
		return nil, fmt.Errorf("%s: nil pipeline result", handlerType)
	}

	response := Response{
		Series:   result.Daily,
		Selected: result.Selected,
	}
	message := fmt.Sprintf("%v working days and %v non-working days", len(result.Daily.Working), len(result.Daily.NonWorking))
	log.Debug(dh.getLogMessage("GenerateResponse", message, nil))

	queryResponse := queryresponse.NewQueryResponse(queryID, string(result.Request.Granularity), handlerType, responseType, message, response)
	return queryResponse.WithFilter(result.Request.Interval, string(result.Request.UserType)), nil
}
