package dto

type DecideInput struct {
	RequisitionID string
	Action        string
	Token         string
	// Remarks skips the prompt when set.
	Remarks *string
}

type DecideOutput struct {
	RequisitionID int64
	Action        string
	Level         string
	Message       string
	// Reload asks the caller to refetch everything it shows.
	Reload bool
}
