// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"francheasy/internal/delivery/http/middleware"
	"francheasy/internal/delivery/http/response"
	"francheasy/internal/domain/entity"
	"francheasy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the VK sign-in flow and session handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// refreshRequest is the body of the token refresh endpoint.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// userResponse is the public shape of a user profile.
type userResponse struct {
	ID        string         `json:"id"`
	VKID      string         `json:"vk_id"`
	VKProfile map[string]any `json:"vk_profile,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// VKLogin starts the sign-in flow by redirecting the browser to VK.
func (h *AuthHandler) VKLogin(c echo.Context) error {
	redirect, err := h.uc.BeginLogin(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusTemporaryRedirect, redirect.AuthURL)
}

// VKLoginQR renders a fresh sign-in URL as a PNG QR code.
func (h *AuthHandler) VKLoginQR(c echo.Context) error {
	png, err := h.uc.LoginQR(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// VKCallback completes the sign-in flow and issues the session token pair.
func (h *AuthHandler) VKCallback(c echo.Context) error {
	input := usecase.CallbackInput{
		Code:     c.QueryParam("code"),
		State:    c.QueryParam("state"),
		DeviceID: c.QueryParam("device_id"),
	}

	pair, err := h.uc.HandleCallback(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, pair)
}

// Refresh issues a new access token for a valid refresh token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh token input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, err := h.uc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, pair)
}

// GetProfile returns the authenticated user's profile.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	user, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "")
}

func toUserResponse(user *entity.User) userResponse {
	resp := userResponse{
		ID:        user.ID.String(),
		VKID:      user.VKID,
		CreatedAt: user.CreatedAt,
	}
	// The stored profile is opaque JSON; surface it as-is when it decodes.
	if len(user.VKProfile) > 0 {
		var profile map[string]any
		if err := decodeJSON(user.VKProfile, &profile); err == nil {
			resp.VKProfile = profile
		}
	}

	return resp
}
