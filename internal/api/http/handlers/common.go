package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/auth"
	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/service"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

func sessionActor(c *fiber.Ctx) (service.Actor, error) {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return service.Actor{}, apperrors.NewUnauthorized("authentication required")
	}
	return service.Actor{UserID: session.UserID, Role: session.Role}, nil
}

func parseBody(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.Validate(v)
}

func pagination(c *fiber.Ctx) (limit, offset int) {
	return c.QueryInt("limit", 20), c.QueryInt("offset", 0)
}

func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, apperrors.NewValidationError(key+" must be RFC3339 or YYYY-MM-DD", nil)
		}
	}
	return &t, nil
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Role:       string(user.Role),
		GivenName:  user.GivenName,
		FamilyName: user.FamilyName,
		IsActive:   user.IsActive,
	}
}
