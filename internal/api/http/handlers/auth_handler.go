package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/travel-order-service/internal/api/dto"
	"github.com/spec-kit/travel-order-service/internal/api/response"
	"github.com/spec-kit/travel-order-service/internal/auth"
	"github.com/spec-kit/travel-order-service/internal/service"
	"github.com/spec-kit/travel-order-service/internal/validation"
	apperrors "github.com/spec-kit/travel-order-service/pkg/util"
)

// AuthHandler exposes token issuance and credential checks.
type AuthHandler struct {
	auth      *service.AuthService
	validator *validation.Validator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{auth: authService, validator: validator}
}

// Authenticate handles POST /authenticate. Only the administrative account
// receives a token.
func (h *AuthHandler) Authenticate(c *fiber.Ctx) error {
	email, password, err := h.credentials(c)
	if err != nil {
		return err
	}
	token, err := h.auth.VerifyAdmin(c.UserContext(), email, password)
	if err != nil {
		return err
	}
	return response.OK(c, "Token created successfully", dto.AuthResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
	})
}

// Login handles POST /v1/userLogin.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email, password, err := h.credentials(c)
	if err != nil {
		return err
	}
	user, err := h.auth.VerifyCredentials(c.UserContext(), email, password)
	if err != nil {
		return err
	}
	return response.OK(c, "Login successful", dto.LoginResponse{User: dto.NewUserResponse(user)})
}

// Logout handles POST /v1/logout by revoking the bearer token of the request.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(apperrors.MsgUnauthenticated)
	}
	if err := h.auth.RevokeToken(c.UserContext(), principal.TokenID); err != nil {
		return err
	}
	return response.OK(c, "Token revoked successfully", nil)
}

func (h *AuthHandler) credentials(c *fiber.Ctx) (string, string, error) {
	input, err := bodyInput(c)
	if err != nil {
		return "", "", err
	}
	fields, err := h.validator.Validate(c.UserContext(), validation.OpAuthenticate, input)
	if err != nil {
		return "", "", err
	}
	return fields.String("email"), fields.String("password"), nil
}
