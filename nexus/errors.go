package nexus

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrRateLimited means the Nexus answered 429: the server disagrees with our
// local quota bookkeeping. Distinct from QuotaError, which is the local gate.
var ErrRateLimited = errors.New("the Nexus has rate-limited you (429)")

// QuotaError is returned before any network call when local bookkeeping says
// a quota window is exhausted. Recoverable by waiting until Reset.
type QuotaError struct {
	Window string // "hourly" or "daily"
	Limit  int
	Reset  time.Time
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("past %s api call limit of %d; wait until %s",
		e.Window, e.Limit, e.Reset.Format(time.RFC3339))
}

// RemoteError is any non-success HTTP status other than 304 and 429,
// surfaced verbatim for diagnosis.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("the Nexus responded with %d: %s", e.Status, e.Body)
}

// DecodeError means a response body did not match the expected shape. This
// strongly suggests API contract drift and is fatal for the call.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unexpected response shape from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a RemoteError for a 404.
func IsNotFound(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.Status == http.StatusNotFound
}
