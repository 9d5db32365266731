package fetcher

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/go-github/v67/github"

	"gh-repo-cache/internal/models"
)

// classify maps a GitHub SDK error to the failure taxonomy: 404s are
// not-found, rate limits and server-side or transport trouble are transient,
// everything else is unexpected.
func classify(err error) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse

	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		return models.NewFailure(models.FailureTransient, err)

	case errors.As(err, &respErr):
		status := 0
		if respErr.Response != nil {
			status = respErr.Response.StatusCode
		}
		switch {
		case status == http.StatusNotFound:
			return models.NewFailure(models.FailureNotFound, err)
		case status == http.StatusTooManyRequests || status >= 500:
			return models.NewFailure(models.FailureTransient, err)
		default:
			return models.NewFailure(models.FailureUnexpected, err)
		}

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return models.NewFailure(models.FailureTransient, err)

	default:
		var failure *models.Failure
		if errors.As(err, &failure) {
			return err
		}
		// Anything the SDK could not turn into an API error is transport
		// trouble: DNS, connection reset, TLS.
		return models.NewFailure(models.FailureTransient, err)
	}
}
