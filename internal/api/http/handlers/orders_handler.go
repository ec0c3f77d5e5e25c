package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/travel-order-service/internal/api/dto"
	"github.com/spec-kit/travel-order-service/internal/api/response"
	"github.com/spec-kit/travel-order-service/internal/domain"
	"github.com/spec-kit/travel-order-service/internal/service"
	"github.com/spec-kit/travel-order-service/internal/validation"
)

// OrdersHandler manages travel order endpoints.
type OrdersHandler struct {
	service   *service.OrderService
	validator *validation.Validator
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService, validator *validation.Validator) *OrdersHandler {
	return &OrdersHandler{service: orderService, validator: validator}
}

// List GET /v1/orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	orders, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return response.OK(c, "Travel orders retrieved successfully", dto.NewOrderList(orders))
}

// Create POST /v1/orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	input, err := bodyInput(c)
	if err != nil {
		return err
	}
	fields, err := h.validator.Validate(c.UserContext(), validation.OpCreateOrder, input)
	if err != nil {
		return err
	}

	order, err := h.service.Create(c.UserContext(), service.OrderCreateInput{
		CustomerName: fields.String("customer_name"),
		Destiny:      fields.String("destiny"),
		StartDate:    fields.Date("start_date"),
		ReturnDate:   fields.Date("return_date"),
		Status:       domain.OrderStatus(fields.String("status")),
		UserID:       fields.Int64("user_id"),
	})
	if err != nil {
		return err
	}
	return response.Created(c, "Travel order created successfully", dto.NewOrderResponse(order))
}

// Show GET /v1/orders/:id.
func (h *OrdersHandler) Show(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	order, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.OK(c, "Travel order retrieved successfully", dto.NewOrderResponse(order))
}

// Update PUT|PATCH /v1/orders/:id.
func (h *OrdersHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	input, err := bodyInput(c)
	if err != nil {
		return err
	}
	fields, err := h.validator.Validate(c.UserContext(), validation.OpUpdateOrder, input)
	if err != nil {
		return err
	}

	patch := domain.TravelOrderPatch{
		CustomerName: fields.StringPtr("customer_name"),
		Destiny:      fields.StringPtr("destiny"),
		StartDate:    fields.DatePtr("start_date"),
		ReturnDate:   fields.DatePtr("return_date"),
		UserID:       fields.Int64Ptr("user_id"),
	}
	if fields.Has("status") {
		status := domain.OrderStatus(fields.String("status"))
		patch.Status = &status
	}

	order, err := h.service.Update(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return response.OK(c, "Travel order updated successfully", dto.NewOrderResponse(order))
}

// Delete DELETE /v1/orders/:id.
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return response.OK(c, "Travel order deleted successfully", nil)
}

// Filter POST /v1/filterOrders.
func (h *OrdersHandler) Filter(c *fiber.Ctx) error {
	input, err := bodyInput(c)
	if err != nil {
		return err
	}
	fields, err := h.validator.Validate(c.UserContext(), validation.OpFilterOrders, input)
	if err != nil {
		return err
	}

	orders, err := h.service.Filter(c.UserContext(), service.OrderFilterInput{
		Destination: fields.StringPtr("destination"),
		StartDate:   fields.DatePtr("start_date"),
		EndDate:     fields.DatePtr("end_date"),
	})
	if err != nil {
		return err
	}
	return response.OK(c, "Filtered travel orders retrieved successfully", dto.NewOrderList(orders))
}

// ByUser POST /v1/ordersByUser.
func (h *OrdersHandler) ByUser(c *fiber.Ctx) error {
	input, err := bodyInput(c)
	if err != nil {
		return err
	}
	fields, err := h.validator.Validate(c.UserContext(), validation.OpOrdersByUser, input)
	if err != nil {
		return err
	}

	orders, err := h.service.ListByUser(c.UserContext(), fields.Int64("user_id"))
	if err != nil {
		return err
	}
	return response.OK(c, "User travel orders retrieved successfully", dto.NewOrderList(orders))
}
