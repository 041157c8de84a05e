package handler

import (
	"errors"

	"github.com/entitydesk/entity-api/internal/api/metrics"
	"github.com/entitydesk/entity-api/internal/core/domain"
)

// recordMutation updates the mutation counters for one engine call.
func recordMutation(entity, operation string, err error) {
	if err == nil {
		metrics.MutationsTotal.WithLabelValues(entity, operation).Inc()
		return
	}
	metrics.MutationErrorsTotal.WithLabelValues(entity, errorReason(err)).Inc()
}

// errorReason buckets an engine error into the taxonomy used as the metric label.
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, domain.ErrInvalidRole):
		return "malformed"
	case errors.Is(err, domain.ErrNoFieldsToUpdate):
		return "noop"
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCompanyNotFound),
		errors.Is(err, domain.ErrClientNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrCompanyAssigned),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken):
		return "conflict"
	default:
		return "internal"
	}
}
