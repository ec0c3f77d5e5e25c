// Package response renders the uniform JSON envelope returned by every
// endpoint.
package response

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Data       interface{}         `json:"data,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	StatusCode int                 `json:"status_code"`
}

// OK writes a 200 success envelope.
func OK(c *fiber.Ctx, message string, data interface{}) error {
	return Write(c, http.StatusOK, message, data)
}

// Created writes a 201 success envelope.
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return Write(c, http.StatusCreated, message, data)
}

// Write writes a success envelope with an arbitrary status.
func Write(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Envelope{
		Success:    status < http.StatusBadRequest,
		Message:    message,
		Data:       data,
		StatusCode: status,
	})
}

// Error writes a failure envelope.
func Error(c *fiber.Ctx, status int, message string, errors map[string][]string) error {
	return c.Status(status).JSON(Envelope{
		Success:    false,
		Message:    message,
		Errors:     errors,
		StatusCode: status,
	})
}
