package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", NewValidationError(map[string][]string{"a": {"x"}}), http.StatusUnprocessableEntity, CodeValidationFailed, MsgValidationFailed},
		{"domain rule", NewDomainRuleViolation("nope"), http.StatusBadRequest, CodeDomainRule, "nope"},
		{"unauthorized", NewUnauthorized("Invalid credentials"), http.StatusUnauthorized, CodeUnauthorized, "Invalid credentials"},
		{"wrapped domain", fmt.Errorf("ctx: %w", NewNotFound("")), http.StatusNotFound, CodeNotFound, MsgNotFound},
		{"no rows", fmt.Errorf("get order: %w", pgx.ErrNoRows), http.StatusNotFound, CodeNotFound, MsgNotFound},
		{"route not found", fiber.ErrNotFound, http.StatusNotFound, CodeNotFound, MsgEndpointNotFound},
		{"fiber bad request", fiber.NewError(http.StatusBadRequest, "bad"), http.StatusBadRequest, CodeBadRequest, "bad"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal, MsgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			assert.Equal(t, tt.status, de.HTTPStatus)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.message, de.Message)
		})
	}
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))
}

func TestClientMessage(t *testing.T) {
	de := ToDomainError(errors.New("db exploded"))

	assert.Equal(t, MsgInternal, de.ClientMessage(false))
	assert.Equal(t, "db exploded", de.ClientMessage(true))

	rule := ToDomainError(NewDomainRuleViolation("rule"))
	assert.Equal(t, "rule", rule.ClientMessage(true))
}
