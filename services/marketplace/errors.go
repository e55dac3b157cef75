package marketplace

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is any rejection from the remote booking backend. The
// backend exposes no structured taxonomy beyond code and message, so
// failures (including "order not changeable" rejections) are
// distinguished by message only.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("marketplace: %s (http %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("marketplace: %s (%s, http %d)", e.Message, e.Code, e.Status)
}

type errorBody struct {
	Errors []struct {
		Code    string `json:"code"`
		Title   string `json:"title"`
		Message string `json:"message"`
	} `json:"errors"`
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && len(body.Errors) > 0 {
		apiErr.Code = body.Errors[0].Code
		if body.Errors[0].Message != "" {
			apiErr.Message = body.Errors[0].Message
		} else if body.Errors[0].Title != "" {
			apiErr.Message = body.Errors[0].Title
		}
	}
	return apiErr
}
