package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/travel-order-service/internal/api/dto"
	"github.com/spec-kit/travel-order-service/internal/api/response"
	"github.com/spec-kit/travel-order-service/internal/service"
	"github.com/spec-kit/travel-order-service/internal/validation"
)

// NotificationsHandler manages user notification endpoints.
type NotificationsHandler struct {
	service   *service.NotificationService
	validator *validation.Validator
}

func NewNotificationsHandler(notificationService *service.NotificationService, validator *validation.Validator) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService, validator: validator}
}

// List GET /v1/notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	list, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return response.OK(c, "Notifications retrieved successfully", dto.NewNotificationList(list))
}

// Create POST /v1/notifications.
func (h *NotificationsHandler) Create(c *fiber.Ctx) error {
	input, err := bodyInput(c)
	if err != nil {
		return err
	}
	fields, err := h.validator.Validate(c.UserContext(), validation.OpCreateNotification, input)
	if err != nil {
		return err
	}

	n, err := h.service.Create(c.UserContext(), fields.Int64("user_id"), fields.String("message"))
	if err != nil {
		return err
	}
	return response.Created(c, "Notification created successfully", dto.NewNotificationResponse(n))
}

// Show GET /v1/notifications/:id.
func (h *NotificationsHandler) Show(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	n, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.OK(c, "Notification retrieved successfully", dto.NewNotificationResponse(n))
}

// Delete DELETE /v1/notifications/:id.
func (h *NotificationsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return response.OK(c, "Notification deleted successfully", nil)
}

// ByUser POST /v1/showUserNotifications.
func (h *NotificationsHandler) ByUser(c *fiber.Ctx) error {
	input, err := bodyInput(c)
	if err != nil {
		return err
	}
	fields, err := h.validator.Validate(c.UserContext(), validation.OpNotificationsByUser, input)
	if err != nil {
		return err
	}

	list, err := h.service.ListByUser(c.UserContext(), fields.Int64("user_id"))
	if err != nil {
		return err
	}
	return response.OK(c, "User notifications retrieved successfully", dto.NewNotificationList(list))
}
