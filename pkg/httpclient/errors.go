package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/Mohahamed99-by/shoe-store-morocco/pkg/errors"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 1 << 20

// downstreamError accepts both the {"error":{code,message}} envelope and a bare
// {"message": "..."} body.
type downstreamError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// ParseResponseError consumes and closes the body of a non-2xx response and
// translates it into an error. Structured bodies keep their code and message;
// anything else is reported with the status and raw body.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	var d downstreamError
	if json.Unmarshal(body, &d) == nil {
		switch {
		case d.Error != nil:
			return mapDownstreamError(resp.StatusCode, d.Error.Code, d.Error.Message, serviceName)
		case d.Message != "":
			return mapDownstreamError(resp.StatusCode, "", d.Message, serviceName)
		}
	}

	return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, strings.TrimSpace(string(body)))
}

func mapDownstreamError(status int, code, message, serviceName string) error {
	qualified := fmt.Sprintf("%s: %s", serviceName, message)

	switch {
	case status == http.StatusNotFound:
		e := apperrors.NotFound(serviceName, message)
		e.Message = message
		return e
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualified)
	case status == http.StatusServiceUnavailable:
		e := apperrors.ServiceUnavailable(qualified)
		if code != "" {
			e.Code = code
		}
		return e
	case status >= 500:
		return fmt.Errorf("%s server error (%d/%s): %s", serviceName, status, code, message)
	case IsClientError(status):
		if code == "" {
			code = http.StatusText(status)
		}
		return &apperrors.AppError{Code: code, Message: qualified, Status: status}
	default:
		return fmt.Errorf("%s returned status %d: %s", serviceName, status, message)
	}
}

// IsClientError reports whether status is a 4xx code.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
