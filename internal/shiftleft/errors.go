package shiftleft

import (
	"errors"
	"fmt"
)

var ErrApplicationNotFound = errors.New("application not found")

// HTTPError is returned when the API answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: unexpected status %d: %s", e.URL, e.StatusCode, e.Body)
}

type ApplicationNotFoundError struct {
	Name  string
	OrgID string
}

func (e *ApplicationNotFoundError) Error() string {
	return fmt.Sprintf("application %q not found in organization %s", e.Name, e.OrgID)
}

func (e *ApplicationNotFoundError) Is(target error) bool {
	return target == ErrApplicationNotFound
}
