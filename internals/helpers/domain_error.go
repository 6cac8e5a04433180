package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"relawanku_backend/internals/features/attendance/domain"
)

// JsonDomainError memetakan error domain attendance ke envelope
// standar. Error internal tidak dibocorkan ke caller, hanya dicatat.
func JsonDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return JsonError(c, fiber.StatusNotFound, "Resource not found")
	case errors.Is(err, domain.ErrForbidden):
		return JsonError(c, fiber.StatusForbidden, "You are not allowed to perform this action")
	case errors.Is(err, domain.ErrConflict):
		return JsonError(c, fiber.StatusConflict, "A conflicting record already exists")
	case errors.Is(err, domain.ErrInvalidState):
		return JsonError(c, fiber.StatusBadRequest, "Operation is not valid in the current activity state")
	}
	if oow, ok := domain.AsOutOfWindow(err); ok {
		return JsonError(c, fiber.StatusUnprocessableEntity, "Check-in rejected: "+oow.Reason)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	log.Printf("[ERROR] internal: %v", err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}
