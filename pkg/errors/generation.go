package errors

// GenerationParseError is returned when the completion service's response
// text could not be parsed as JSON. Raw carries the unmodified response so
// operators can diagnose prompt or model drift.
type GenerationParseError struct {
	Raw string `json:"raw"`
}

func (e *GenerationParseError) Error() string {
	return "failed to parse completion response as JSON"
}
