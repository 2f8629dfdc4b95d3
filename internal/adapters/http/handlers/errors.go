package handlers

import (
	"errors"
	"log"
	"time"

	"hrm-location/internal/core/domain"
	"hrm-location/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// badRequestErrors are client mistakes reported with their own message
var badRequestErrors = []error{
	domain.ErrInvalidInput,
	domain.ErrInvalidCredentials,
	domain.ErrInvalidRole,
	domain.ErrDuplicateEmail,
	domain.ErrWeakPassword,
	domain.ErrCannotDeleteSelf,
	domain.ErrOfficeLocationNotSet,
	domain.ErrInvalidCoordinates,
	domain.ErrInvalidRadius,
	domain.ErrAlreadyCheckedIn,
	domain.ErrNotCheckedIn,
	domain.ErrAlreadyCheckedOut,
	domain.ErrInvalidDate,
}

// handleError maps a service error onto the response envelope.
// Anything unrecognized is logged and reported as a bare 500.
func handleError(c *fiber.Ctx, err error) error {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return response.BadRequest(c, err.Error())
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidRefreshToken),
		errors.Is(err, domain.ErrMissingToken),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	}

	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return response.InternalServerError(c, "Internal server error")
}

// parseDate accepts YYYY-MM-DD or RFC 3339
func parseDate(s string) (*time.Time, error) {
	if t, err := time.Parse(domain.DateLayout, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	return &t, nil
}
