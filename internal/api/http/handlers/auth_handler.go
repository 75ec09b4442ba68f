package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/feed-service/internal/api/dto"
	"github.com/spec-kit/feed-service/internal/service"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /login. A known id is the only credential.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ID == "" {
		return fiber.NewError(http.StatusBadRequest, "id required")
	}

	token, _, err := h.auth.Login(c.Context(), req.ID)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{Token: token})
}
