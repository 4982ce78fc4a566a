package models

// ErrorBody is the response shape for every 4xx and 5xx answer.
type ErrorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

func ErrorResponse(err string) ErrorBody {
	return ErrorBody{Error: err}
}

func ErrorWithDetails(err string, details interface{}) ErrorBody {
	return ErrorBody{Error: err, Details: details}
}
