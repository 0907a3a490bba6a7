package queryresponse

import (
	"github.com/mrsyaban/bike-rental-analysis/domain/entities"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/interval"
)

// QueryResponse contains the response of a dashboard view
// + Metadata: who generated the response and for which dataset
// + QueryID: ID of the view
// + Interval: date interval the rows were filtered with
// + UserType: user type selected when the response was generated
// + Payload: tabular data of the view
type QueryResponse struct {
	Metadata entities.Metadata     `json:"metadata"`
	QueryID  string                `json:"query_id"`
	Interval interval.DateInterval `json:"interval"`
	UserType string                `json:"user_type"`
	Payload  interface{}           `json:"payload"`
}

func NewQueryResponse(queryID string, dataset string, sender string, responseType string, message string, payload interface{}) *QueryResponse {
	metadata := entities.NewMetadata(dataset, responseType, sender, message)
	return &QueryResponse{
		Metadata: metadata,
		QueryID:  queryID,
		Payload:  payload,
	}
}

// WithFilter returns the response tagged with the filter it was computed for
func (qr *QueryResponse) WithFilter(dateInterval interval.DateInterval, userType string) *QueryResponse {
	qr.Interval = dateInterval
	qr.UserType = userType
	return qr
}

func (qr *QueryResponse) GetMetadata() entities.Metadata {
	return qr.Metadata
}

func (qr *QueryResponse) GetQueryID() string {
	return qr.QueryID
}
