package handlers

import (
	"errors"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	apierrors "github.com/codecops/cleanify-api/internal/errors"
	"github.com/codecops/cleanify-api/internal/services"
)

// respondServiceError maps a service error onto the API error envelope.
// Unknown errors are logged and surfaced as 500 without detail.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrLocationRequired),
		errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrResponseRequired),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrIncompleteCoordinates),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidComplaintStatus):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrComplaintNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrWorkerNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrBinNotFound),
		errors.Is(err, services.ErrAlertNotFound),
		errors.Is(err, services.ErrMediaNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrComplaintResolved),
		errors.Is(err, services.ErrComplaintAlreadyAssigned),
		errors.Is(err, services.ErrTaskNotPending),
		errors.Is(err, services.ErrTaskNotInProgress),
		errors.Is(err, services.ErrTaskAlreadyCompleted),
		errors.Is(err, services.ErrTaskNotCompleted),
		errors.Is(err, services.ErrTaskAlreadyApproved):
		apierrors.InvalidOperation(c, err.Error())

	case errors.Is(err, services.ErrWorkerHasOpenTasks),
		errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())

	case errors.Is(err, services.ErrNotAssignedWorker):
		apierrors.Forbidden(c, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())

	case errors.Is(err, services.ErrUnsupportedMediaType),
		errors.Is(err, services.ErrInvalidFilename):
		apierrors.BadRequest(c, err.Error())

	default:
		log.WithError(err).Error("unhandled service error")
		apierrors.InternalError(c, "")
	}
}
