package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopfront/internal/handlers"
	authmw "shopfront/internal/middleware/auth"
	"shopfront/internal/session"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	SearchHandler  *handlers.SearchHandler
	Sessions       *session.Manager
	StaticDir      string
}

func Register(e *echo.Echo, d *Deps) {
	e.Use(authmw.LoadSession(d.Sessions))

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/", d.ProductHandler.Home)

	e.GET("/register", d.AuthHandler.RegisterPage)
	e.POST("/register", d.AuthHandler.Register)
	e.GET("/login", d.AuthHandler.LoginPage)
	e.POST("/login", d.AuthHandler.Login)
	e.GET("/logout", d.AuthHandler.Logout, authmw.RequireLogin)

	e.GET("/products", d.ProductHandler.ListProducts)
	e.GET("/viewitem", d.ProductHandler.ViewItem)
	e.GET("/search", d.SearchHandler.Search)

	// Management routes: authentication first, then the role check.
	staff := []echo.MiddlewareFunc{authmw.RequireLogin, authmw.RequireRole("admin", "staff")}

	e.GET("/add_pro", d.ProductHandler.AddProductPage, staff...)
	e.POST("/add_pro", d.ProductHandler.AddProduct, staff...)
	e.GET("/view", d.ProductHandler.ManageProducts, staff...)
	e.GET("/modify", d.ProductHandler.ModifyPage, staff...)
	e.POST("/modify", d.ProductHandler.Modify, staff...)
	e.GET("/delete", d.ProductHandler.Delete, staff...)

	e.Static("/static", d.StaticDir)
}
