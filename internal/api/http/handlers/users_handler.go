package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/travel-order-service/internal/api/dto"
	"github.com/spec-kit/travel-order-service/internal/api/response"
	"github.com/spec-kit/travel-order-service/internal/domain"
	"github.com/spec-kit/travel-order-service/internal/service"
	"github.com/spec-kit/travel-order-service/internal/validation"
)

// UsersHandler manages user account endpoints.
type UsersHandler struct {
	service   *service.UserService
	validator *validation.Validator
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, validator *validation.Validator) *UsersHandler {
	return &UsersHandler{service: userService, validator: validator}
}

// List GET /v1/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return response.OK(c, "Users retrieved successfully", dto.NewUserList(users))
}

// Create POST /v1/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	input, err := bodyInput(c)
	if err != nil {
		return err
	}
	fields, err := h.validator.Validate(c.UserContext(), validation.OpCreateUser, input)
	if err != nil {
		return err
	}

	user, err := h.service.Create(c.UserContext(), service.UserCreateInput{
		Name:     fields.String("name"),
		Email:    fields.String("email"),
		Password: fields.String("password"),
	})
	if err != nil {
		return err
	}
	return response.Created(c, "User created successfully", dto.NewUserResponse(user))
}

// Show GET /v1/users/:id.
func (h *UsersHandler) Show(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.OK(c, "User retrieved successfully", dto.NewUserResponse(user))
}

// Update PUT|PATCH /v1/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	input, err := bodyInput(c)
	if err != nil {
		return err
	}
	fields, err := h.validator.Validate(c.UserContext(), validation.OpUpdateUser, input, validation.IgnoringUser(id))
	if err != nil {
		return err
	}

	user, err := h.service.Update(c.UserContext(), id, domain.UserPatch{
		Name:     fields.StringPtr("name"),
		Email:    fields.StringPtr("email"),
		Password: fields.StringPtr("password"),
	})
	if err != nil {
		return err
	}
	return response.OK(c, "User updated successfully", dto.NewUserResponse(user))
}

// Delete DELETE /v1/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return response.OK(c, "User deleted successfully", nil)
}
