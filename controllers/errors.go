package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTPError is an error with the status it should be reported with.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func newHTTPError(status int, format string, args ...interface{}) *HTTPError {
	return &HTTPError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// fail hands err to ErrorHandler and stops the handler chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler renders the last error pushed by any later handler as
// {"error": message}. Errors that are not *HTTPError are reported as 500.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		status := http.StatusInternalServerError
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Status
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		} else {
			logger.Debug("request rejected", zap.Int("status", status), zap.Error(err))
		}
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

// Recovery turns a panic into a 500 error for ErrorHandler.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		fail(c, fmt.Errorf("%v", recovered))
	})
}

// MethodNotAllowed rejects the request naming the route it matched.
func MethodNotAllowed(c *gin.Context) {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	fail(c, newHTTPError(http.StatusMethodNotAllowed, "%s not allowed for %s", c.Request.Method, path))
}

// NotFound handles paths that match no route.
func NotFound(c *gin.Context) {
	fail(c, newHTTPError(http.StatusNotFound, "Resource not found: %s", c.Request.URL.Path))
}
