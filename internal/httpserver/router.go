package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planventure/planventure-api/internal/middleware/auth"
)

type Deps struct {
	AuthHandler  *AuthHandler
	OAuthHandler *OAuthHandler
	TripHandler  *TripHandler
	FormHandler  *FormHandler
	AccessSecret []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	public := e.Group("/auth")
	public.POST("/register", d.AuthHandler.Register)
	public.POST("/login", d.AuthHandler.Login)
	public.POST("/refresh", d.AuthHandler.Refresh)
	public.POST("/logout", d.AuthHandler.Logout)
	public.POST("/forgot-password", d.AuthHandler.ForgotPassword)
	public.POST("/reset-password", d.AuthHandler.ResetPassword)

	if d.OAuthHandler != nil {
		public.GET("/google/login", d.OAuthHandler.GoogleLogin)
		public.GET("/google/callback", d.OAuthHandler.GoogleCallback)
	}

	api := e.Group("/api")
	api.Use(auth.RequireLogin(d.AccessSecret))

	api.POST("/trips", d.TripHandler.Create)
	api.GET("/trips", d.TripHandler.List)
	api.GET("/trips/search", d.TripHandler.Search)
	api.GET("/trips/:id", d.TripHandler.Get)
	api.PUT("/trips/:id", d.TripHandler.Update)
	api.DELETE("/trips/:id", d.TripHandler.Delete)

	api.DELETE("/account", d.AuthHandler.DeleteAccount)

	api.POST("/forms/:type", d.FormHandler.Submit)
	api.GET("/forms", d.FormHandler.List)
	api.GET("/forms/:id", d.FormHandler.Get)
}
