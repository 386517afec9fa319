package restdata

import (
	"encoding/json"
	"fmt"

	"github.com/openadmin-hq/restdata-go/pkg/httpclient"
)

// decodeResponse turns an HTTP response into either a decoded payload or a
// classified error. Statuses of 400 and above always yield a ResponseError
// carrying the status; the validation-errors array is attached when the body
// decodes, and an empty or undecodable body still classifies cleanly.
// Pass a nil out to skip body decoding on success (deletes may answer with
// an empty body).
func decodeResponse(resp httpclient.Response, out any) error {
	if resp.StatusCode() >= 400 {
		respErr := &ResponseError{Status: resp.StatusCode()}
		if body := resp.Body(); len(body) > 0 {
			var payload struct {
				Errors []ValidationError `json:"errors"`
			}
			if err := json.Unmarshal(body, &payload); err == nil {
				respErr.Errors = payload.Errors
			}
		}
		return respErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
