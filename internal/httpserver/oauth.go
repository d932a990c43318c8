package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"

	"github.com/planventure/planventure-api/internal/logging"
	"github.com/planventure/planventure-api/internal/service"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// OAuthHandler drives the Google authorization-code flow and hands the
// verified email to the auth service for find-or-create login.
type OAuthHandler struct {
	Svc    *service.AuthService
	Config *oauth2.Config
}

func (h *OAuthHandler) configured() bool {
	return h.Config != nil && h.Config.ClientID != "" && h.Config.ClientSecret != ""
}

func (h *OAuthHandler) GoogleLogin(c echo.Context) error {
	if !h.configured() {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "OAuth provider not configured"})
	}

	state := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((10 * time.Minute).Seconds()),
	})

	authURL := h.Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
	return c.JSON(http.StatusOK, map[string]string{"auth_url": authURL})
}

func (h *OAuthHandler) GoogleCallback(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "oauth_google_callback")

	if !h.configured() {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "OAuth provider not configured"})
	}

	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "missing authorization code"})
	}

	stateCookie, err := c.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != c.QueryParam("state") {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "invalid OAuth state"})
	}
	c.SetCookie(&http.Cookie{Name: "oauth_state", Value: "", Path: "/", HttpOnly: true, MaxAge: -1})

	exchangeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	token, err := h.Config.Exchange(exchangeCtx, code)
	if err != nil {
		l.Warn("code exchange failed", "error", err)
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "failed to exchange OAuth code"})
	}

	email, err := fetchGoogleEmail(exchangeCtx, token)
	if err != nil {
		l.Warn("userinfo fetch failed", "error", err)
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "failed to fetch user info"})
	}

	user, pair, err := h.Svc.LoginWithProvider(ctx, email)
	if err != nil {
		l.Warn("provider login failed", "error", err)
		return respondError(c, err)
	}

	l.Info("oauth login successful", "user_id", user.ID)
	return c.JSON(http.StatusOK, tokenResponse{
		Message:      "Login successful",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         &userBody{ID: user.ID, Email: user.Email},
	})
}

func fetchGoogleEmail(ctx context.Context, token *oauth2.Token) (string, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Email == "" {
		return "", fmt.Errorf("userinfo response missing email")
	}
	return payload.Email, nil
}
