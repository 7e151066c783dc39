package watsonx

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoResults is returned when a success response carries no result element.
var ErrNoResults = errors.New("no results in response")

// APIError is a non-success reply from the generation endpoint. Body holds
// the raw upstream error payload.
type APIError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("watsonx API error: %d", e.StatusCode)
}
