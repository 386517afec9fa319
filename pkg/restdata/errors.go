package restdata

import (
	"errors"
	"fmt"
)

// ValidationError is a per-field validation failure reported by the server.
type ValidationError struct {
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
	Property   string `json:"property"`
}

// ResponseError is returned whenever the server answers with a status of 400
// or above. Errors holds the server's field-level validation failures when
// the error body carried a decodable errors array.
type ResponseError struct {
	Status int
	Errors []ValidationError
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("http response status %d", e.Status)
}

// AsResponseError reports whether err, anywhere in its chain, is a
// ResponseError, and returns it. Works through fmt.Errorf wrapping, so
// classification does not depend on where the error crossed package
// boundaries.
func AsResponseError(err error) (*ResponseError, bool) {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr, true
	}
	return nil, false
}
