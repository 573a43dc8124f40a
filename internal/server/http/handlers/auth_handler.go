package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/invoices-dashboard/internal/domain/errors"
	pkgAuth "github.com/polkiloo/invoices-dashboard/internal/pkg/auth"
	"github.com/polkiloo/invoices-dashboard/internal/schema"
	"github.com/polkiloo/invoices-dashboard/internal/server/http/middleware"
	"github.com/polkiloo/invoices-dashboard/internal/server/http/view"
)

const msgInvalidCredentials = "Invalid credentials."

// AuthHandler processes login and logout.
type AuthHandler struct {
	facade     AuthFacade
	renderer   Renderer
	sessionTTL time.Duration
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, renderer Renderer, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{facade: facade, renderer: renderer, sessionTTL: sessionTTL}
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, h.renderer, http.StatusOK, view.PageLogin, view.LoginPage{
		Layout:      view.Layout{Title: "Login"},
		CallbackURL: pkgAuth.SafeCallback(c.Query(middleware.CallbackParam)),
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	form := postForm(c)
	callback := pkgAuth.SafeCallback(form.Get(middleware.CallbackParam))

	token, err := h.facade.SignIn(c.Request.Context(), form)
	if err != nil {
		page := view.LoginPage{
			Layout:      view.Layout{Title: "Login"},
			Email:       form.Get(schema.FieldEmail),
			CallbackURL: callback,
		}
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			page.Error = msgInvalidCredentials
			render(c, h.renderer, http.StatusUnauthorized, view.PageLogin, page)
		default:
			_ = c.Error(err)
			page.Error = msgSomethingWrong
			render(c, h.renderer, http.StatusInternalServerError, view.PageLogin, page)
		}
		return
	}

	middleware.SetSessionCookie(c, token, h.sessionTTL)
	c.Redirect(http.StatusSeeOther, callback)
}

// Logout handles POST /dashboard/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, pkgAuth.LoginPath)
}
