package service

import (
	"context"
	stdErrors "errors"

	"eventrely-api/core/errors"
	"eventrely-api/modules/reminder/domain"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// toAppError translates domain errors into application errors. Anything it
// does not recognise becomes fallback with err as the cause.
func toAppError(err error, fallback errors.ErrorCode, message string) *errors.AppError {
	switch {
	case stdErrors.Is(err, domain.ErrInvalidEventDate):
		return errors.NewAppError(errors.ErrInvalidEventDate, domain.ErrInvalidEventDate.Error(), err)
	case stdErrors.Is(err, domain.ErrInvalidTitle):
		return errors.NewAppError(errors.ErrInvalidTitle, domain.ErrInvalidTitle.Error(), err)
	case stdErrors.Is(err, domain.ErrInvalidStateTransition):
		return errors.NewAppError(errors.ErrInvalidStateTransition, err.Error(), err)
	case stdErrors.Is(err, domain.ErrInvalidEventID):
		return errors.NewAppError(errors.ErrInvalidInput, domain.ErrInvalidEventID.Error(), err)
	case stdErrors.Is(err, domain.ErrEventNotFound):
		return errors.NewAppError(errors.ErrNotFound, domain.ErrEventNotFound.Error(), err)
	case stdErrors.Is(err, domain.ErrConcurrentModification):
		return errors.NewAppError(errors.ErrConflict, domain.ErrConcurrentModification.Error(), err)
	case stdErrors.Is(err, context.DeadlineExceeded):
		return errors.NewAppError(errors.ErrServiceUnavailable, "request timed out", err)
	default:
		return errors.NewAppError(fallback, message, err)
	}
}

func notFound(id domain.EventID) *errors.AppError {
	return errors.NewAppError(errors.ErrNotFound, "event not found: "+id.String(), domain.ErrEventNotFound)
}

// finishSpan records appErr on span, if any, and ends it.
func finishSpan(span trace.Span, appErr *errors.AppError) {
	if appErr != nil {
		span.RecordError(appErr)
		span.SetStatus(codes.Error, string(appErr.Code))
	}
	span.End()
}
