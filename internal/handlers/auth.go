package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"shopfront/internal/flash"
	"shopfront/internal/logging"
	"shopfront/internal/mykafka"
	"shopfront/internal/repo"
	"shopfront/internal/service"
	"shopfront/internal/session"
)

type AuthHandler struct {
	Auth     *service.AuthService
	Sessions *session.Manager
	Producer *mykafka.Producer
}

type registerForm struct {
	Email    string `form:"email"    validate:"required,email"`
	Name     string `form:"name"     validate:"required"`
	Password string `form:"password" validate:"required,min=4"`
}

type loginForm struct {
	Email    string `form:"email"    validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", pageData(c, nil))
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerForm
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, "register.html", pageData(c, echo.Map{"Flash": "invalid form data"}))
	}
	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusOK, "register.html", pageData(c, echo.Map{
			"Flash": "all fields are required and the email must be valid",
		}))
	}

	user, err := h.Auth.Register(c.Request().Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			flash.Set(c, "Email already exists. Try logging in instead.")
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return c.Render(http.StatusOK, "register.html", pageData(c, echo.Map{
			"Flash": "registration failed, please try again",
		}))
	}

	cookie, err := h.Sessions.Issue(c.Request().Context(), user.ID)
	if err != nil {
		flash.Set(c, "account created, please log in")
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	c.SetCookie(cookie)

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	return c.Redirect(http.StatusSeeOther, "/products")
}

func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", pageData(c, nil))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginForm
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", pageData(c, echo.Map{"Flash": "invalid form data"}))
	}
	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusOK, "login.html", pageData(c, echo.Map{"Flash": "email and password are required"}))
	}

	user, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			return c.Render(http.StatusOK, "login.html", pageData(c, echo.Map{"Flash": "Invalid email provided"}))
		case errors.Is(err, service.ErrInvalidPassword):
			return c.Render(http.StatusOK, "login.html", pageData(c, echo.Map{"Flash": "Password incorrect, please try again"}))
		default:
			return c.Render(http.StatusOK, "login.html", pageData(c, echo.Map{"Flash": "login failed, please try again"}))
		}
	}

	cookie, err := h.Sessions.Issue(c.Request().Context(), user.ID)
	if err != nil {
		return c.Render(http.StatusOK, "login.html", pageData(c, echo.Map{"Flash": "login failed, please try again"}))
	}
	c.SetCookie(cookie)

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})

	return c.Redirect(http.StatusSeeOther, "/products")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie(session.CookieName); err == nil && ck.Value != "" {
		if err := h.Sessions.Revoke(c.Request().Context(), ck.Value); err != nil {
			logging.FromContext(c.Request().Context()).Warn("session revoke failed", "error", err)
		}
	}
	c.SetCookie(h.Sessions.ClearCookie())

	if user := currentUser(c); user != nil {
		publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
			"type":   "user_logged_out",
			"userID": user.ID,
		})
	}

	return c.Redirect(http.StatusFound, "/")
}
