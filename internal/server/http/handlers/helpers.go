package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/invoices-dashboard/internal/server/http/view"
)

// Renderer renders named pages into memory.
type Renderer interface {
	RenderBytes(name string, data any) ([]byte, error)
}

const msgSomethingWrong = "Something went wrong."

func render(c *gin.Context, r Renderer, status int, page string, data any) {
	body, err := r.RenderBytes(page, data)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, msgSomethingWrong)
		return
	}
	c.Data(status, view.ContentType, body)
}

func renderError(c *gin.Context, r Renderer, err error, message string) {
	_ = c.Error(err)
	render(c, r, http.StatusInternalServerError, view.PageError, view.ErrorPage{Message: message})
}

// NotFound renders the 404 page for unknown routes.
func NotFound(r Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, r, http.StatusNotFound, view.PageNotFound, view.ErrorPage{})
	}
}

func postForm(c *gin.Context) url.Values {
	if err := c.Request.ParseForm(); err != nil {
		return url.Values{}
	}
	return c.Request.PostForm
}
