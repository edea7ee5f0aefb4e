package session

import (
	"context"
	"errors"
	"net"
)

// Contract errors for the Recommender collaborator. The provider wraps its
// transport failures with one of these so the coordinator can classify
// without knowing anything about HTTP.
var (
	// ErrAuthRequired covers both a rejected credential and a credential
	// that was never configured; the user fixes both the same way.
	ErrAuthRequired   = errors.New("recommendation service auth required")
	ErrNoConnectivity = errors.New("no connectivity")
	ErrTimedOut       = errors.New("recommendation timed out")
	ErrNetwork        = errors.New("recommendation request failed")
)

// Fixed user-facing toast copy. These are the only failure surface the
// user ever sees, keep them friendly.
const (
	ToastSelectGenre   = "Pick at least one genre first."
	ToastSlowDown      = "Hang on a moment before searching again."
	ToastAuthRequired  = "The recommendation service isn't set up yet. Add your API key in settings."
	ToastNoConnection  = "You're offline. Check your connection and try again."
	ToastTimedOut      = "That took too long. Give it another try."
	ToastNetwork       = "Couldn't reach the recommendation service. Try again in a bit."
	ToastSearchFailed  = "Something went wrong. Please try again."
	ToastMissingConfig = "Some settings are missing, recommendations may not work."
	ToastEnjoy         = "Enjoy the movie!"
)

// classifySearchError maps a Recommender failure onto the toast the user
// sees and the outcome label used for metrics and logs. Sentinels from the
// provider are checked first; raw context and net errors are sniffed as a
// fallback so an unwrapped failure still lands in a sensible bucket.
func classifySearchError(err error) (toast, outcome string) {
	switch {
	case errors.Is(err, ErrAuthRequired):
		return ToastAuthRequired, "auth_required"
	case errors.Is(err, ErrNoConnectivity):
		return ToastNoConnection, "no_connectivity"
	case errors.Is(err, ErrTimedOut),
		errors.Is(err, context.DeadlineExceeded):
		return ToastTimedOut, "timed_out"
	case errors.Is(err, ErrNetwork):
		return ToastNetwork, "network"
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ToastTimedOut, "timed_out"
		}
		return ToastNetwork, "network"
	}

	return ToastSearchFailed, "failed"
}
