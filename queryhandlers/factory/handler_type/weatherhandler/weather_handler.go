package weatherhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mrsyaban/bike-rental-analysis/domain/business/aggregate"
	"github.com/mrsyaban/bike-rental-analysis/domain/business/queryresponse"
	"github.com/mrsyaban/bike-rental-analysis/pipeline"
)

const (
	queryID      = "2"
	handlerType  = "weather-handler"
	responseType = "weather"
)

// Response weather impact view, grouped by weather situation label
type Response struct {
	Averages      []aggregate.AverageRow   `json:"averages"`
	Distributions []aggregate.Distribution `json:"distributions"`
}

type WeatherHandler struct{}

func NewWeatherHandler() *WeatherHandler {
	return &WeatherHandler{}
}

func (wh *WeatherHandler) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[handler: %s][query: %s][method: %s][status: ERROR] %s: %s", handlerType, queryID, method, message, err.Error())
	}
	return fmt.Sprintf("[handler: %s][query: %s][method: %s][status: OK] %s", handlerType, queryID, method, message)
}

func (wh *WeatherHandler) GetQueryID() string {
	return queryID
}

// GetType returns handler type
func (wh *WeatherHandler) GetType() string {
	return handlerType
}

// GenerateResponse builds the averages and box plot data per weather descriptor
func (wh *WeatherHandler) GenerateResponse(result *pipeline.Result) (*queryresponse.QueryResponse, error) {
	if result == nil {
		return nil, fmt.Errorf("%s: nil pipeline result", handlerType)
	}

	response := Response{
		Averages:      result.WeatherAverages,
		Distributions: result.WeatherDistributions,
	}
	message := fmt.Sprintf("%v weather conditions", len(result.WeatherAverages))
	log.Debug(wh.getLogMessage("GenerateResponse", message, nil))

	queryResponse := queryresponse.NewQueryResponse(queryID, string(result.Request.Granularity), handlerType, responseType, message, response)
	return queryResponse.WithFilter(result.Request.Interval, string(result.Request.UserType)), nil
}
