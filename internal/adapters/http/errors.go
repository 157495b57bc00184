package httpadapter

import (
	"errors"
	"net/http"

	"bwa/internal/adapters/fetch"
	"bwa/internal/api"
	"bwa/internal/domain"
	"bwa/internal/ports"
	"bwa/internal/services/companies"
	"bwa/internal/services/posts"
	"bwa/internal/services/scanner"
)

// problemFor maps service errors to a response code and HTTP status.
// Unrecognized errors are internal.
func problemFor(err error) (api.Problem, int) {
	switch {
	case errors.Is(err, domain.ErrInvalidHostname):
		return api.Problem{Code: "invalid-hostname", Message: err.Error()}, http.StatusBadRequest
	case errors.Is(err, posts.ErrEmptyPost):
		return api.Problem{Code: "empty-post", Message: err.Error()}, http.StatusBadRequest
	case errors.Is(err, posts.ErrPostTooLong):
		return api.Problem{Code: "post-too-long", Message: err.Error()}, http.StatusBadRequest
	case errors.Is(err, ports.ErrWebsiteNotFound):
		return api.Problem{Code: "website-not-found", Message: err.Error()}, http.StatusNotFound
	case errors.Is(err, companies.ErrNotFound):
		return api.Problem{Code: "company-not-found", Message: err.Error()}, http.StatusNotFound
	case errors.Is(err, ports.ErrJobNotFound):
		return api.Problem{Code: "job-not-found", Message: err.Error()}, http.StatusNotFound
	case errors.Is(err, scanner.ErrScanTooRecent):
		return api.Problem{Code: "scan-too-recent", Message: err.Error()}, http.StatusTooManyRequests
	case errors.Is(err, domain.ErrInvariant):
		return api.Problem{Code: "internal", Message: "internal error"}, http.StatusInternalServerError
	}
	switch fetch.KindOf(err) {
	case fetch.KindNetwork, fetch.KindUpstream:
		return api.Problem{Code: "fetch-" + string(fetch.KindOf(err)), Message: err.Error()}, http.StatusBadGateway
	case fetch.KindRejected:
		return api.Problem{Code: "fetch-rejected", Message: err.Error()}, http.StatusUnprocessableEntity
	case fetch.KindRateLimited:
		return api.Problem{Code: "fetch-rate-limited", Message: err.Error()}, http.StatusTooManyRequests
	case fetch.KindTimeout:
		return api.Problem{Code: "fetch-timeout", Message: err.Error()}, http.StatusGatewayTimeout
	}
	return api.Problem{Code: "internal", Message: "internal error"}, http.StatusInternalServerError
}
