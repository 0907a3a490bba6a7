package entities

// Metadata this struct contains extra information about the data that leaves the pipeline
// + Dataset: dataset the data was computed from (hour or day)
// + Type: this field helps consumers to recognize what type of data is
// + Stage: stage where the Metadata was constructed
// + Message: message with extra information
type Metadata struct {
	Dataset string `json:"dataset"`
	Type    string `json:"type"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func NewMetadata(dataset string, dataType string, stage string, message string) Metadata {
	return Metadata{
		Dataset: dataset,
		Type:    dataType,
		Stage:   stage,
		Message: message,
	}
}

func (m Metadata) GetType() string {
	return m.Type
}

func (m Metadata) GetDataset() string {
	return m.Dataset
}

func (m Metadata) GetStage() string {
	return m.Stage
}

func (m Metadata) GetMessage() string {
	return m.Message
}
