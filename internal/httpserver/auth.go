package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planventure/planventure-api/internal/logging"
	"github.com/planventure/planventure-api/internal/middleware/auth"
	"github.com/planventure/planventure-api/internal/service"
)

type AuthHandler struct {
	Svc *service.AuthService
}

type userBody struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	Message      string    `json:"message,omitempty"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         *userBody `json:"user,omitempty"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "invalid body"})
	}

	user, pair, err := h.Svc.Register(ctx, req.Email, req.Password)
	if err != nil {
		l.Warn("register failed", "error", err)
		return respondError(c, err)
	}

	l.Info("user registered", "user_id", user.ID)
	return c.JSON(http.StatusCreated, tokenResponse{
		Message:      "User registered successfully",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         &userBody{ID: user.ID, Email: user.Email},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		RememberMe bool   `json:"remember_me"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "invalid body"})
	}

	user, pair, err := h.Svc.Login(ctx, req.Email, req.Password, req.RememberMe)
	if err != nil {
		l.Warn("login failed", "error", err)
		return respondError(c, err)
	}

	l.Info("login successful", "user_id", user.ID)
	return c.JSON(http.StatusOK, tokenResponse{
		Message:      "Login successful",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         &userBody{ID: user.ID, Email: user.Email},
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "missing_token", Message: "refresh_token is required"})
	}

	pair, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		logging.FromContext(ctx).Warn("refresh failed", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "invalid body"})
	}

	if err := h.Svc.Logout(ctx, req.RefreshToken); err != nil {
		logging.FromContext(ctx).Error("logout failed", "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_delete_account")

	userID := auth.UserID(c)
	if err := h.Svc.DeleteAccount(ctx, userID); err != nil {
		l.Error("account deletion failed", "user_id", userID, "error", err)
		return respondError(c, err)
	}

	l.Info("account deleted", "user_id", userID)
	return c.JSON(http.StatusOK, map[string]string{"message": "Account deleted"})
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "invalid body"})
	}

	if err := h.Svc.ForgotPassword(ctx, req.Email); err != nil {
		logging.FromContext(ctx).Warn("forgot password failed", "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset email sent"})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "invalid body"})
	}

	if err := h.Svc.ResetPassword(ctx, req.Token, req.Password); err != nil {
		logging.FromContext(ctx).Warn("reset password failed", "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password successfully reset"})
}
