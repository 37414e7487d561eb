package sheets

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

var rateLimitMarkers = []string{"429", "RATE_LIMIT", "RESOURCE_EXHAUSTED"}

// Classify wraps err in domain.ErrRateLimited when the API reported quota
// exhaustion and in domain.ErrUpstreamUnavailable otherwise.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrRateLimited) || errors.Is(err, domain.ErrUpstreamUnavailable) {
		return err
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}
	if IsRateLimitMessage(err.Error()) {
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
}

// IsRateLimitMessage reports whether an error text carries one of the
// quota markers the Sheets API uses.
func IsRateLimitMessage(msg string) bool {
	for _, m := range rateLimitMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
