package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/service"
	"github.com/spec-kit/clinic-service/pkg/util"
)

// NotificationsHandler exposes in-app notification endpoints.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// List handles GET /notifications for the session user.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)
	unreadOnly := c.QueryBool("unread")
	list, err := h.notifications.ListForUser(c.UserContext(), actor.UserID, unreadOnly, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(list))
}

// MarkRead handles POST /notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.UserContext(), c.Params("id"), actor.UserID); err != nil {
		return err
	}
	return c.JSON(util.OK(fiber.Map{"read": true}))
}
