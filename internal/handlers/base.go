package handlers

import (
	"net/http"
	"net/url"
	"singmeasong/internal/middleware"
	"singmeasong/internal/services"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like pending flashes
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if flashes, exists := c.Get(middleware.FlashesKey); exists {
		obj["Flashes"] = flashes
	}

	if _, ok := obj["Active"]; !ok {
		obj["Active"] = ""
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message, "Title": http.StatusText(code)})
}

// statusFor 将领域错误类型映射为 HTTP 状态码
func statusFor(t services.ErrorType) int {
	switch t {
	case services.TypeConflict:
		return http.StatusConflict
	case services.TypeNotFound:
		return http.StatusNotFound
	case services.TypeWrongSchema:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as JSON. Unknown errors are recorded on the
// context for the request logger and answered with an opaque 500.
func respondError(c *gin.Context, err error) {
	if appErr, ok := services.AsAppError(err); ok {
		c.AbortWithStatusJSON(statusFor(appErr.Type), appErr)
		return
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":   "internal",
		"message": "Internal server error",
	})
}

// redirectBack sends the browser to the local page it came from, or fallback.
func redirectBack(c *gin.Context, fallback string) {
	target := fallback
	if ref, err := url.Parse(c.Request.Referer()); err == nil && ref.Path != "" && ref.Host == c.Request.Host {
		target = ref.Path
	}
	c.Redirect(http.StatusSeeOther, target)
}
