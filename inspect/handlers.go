package inspect

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/dime/di"
	"github.com/kbukum/dime/errors"
	"github.com/kbukum/dime/token"
	"github.com/kbukum/dime/version"
)

// Health returns a handler that reports whether d is mounted. An unmounted
// instance answers 503 so the handler can back a readiness probe.
func Health(d *di.Dime) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := d.State()
		status := "healthy"
		httpStatus := http.StatusOK
		if state != di.Mounted {
			status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":    status,
			"state":     state.String(),
			"providers": len(d.Bindings()),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Tokens returns a handler listing every binding in insertion order.
func Tokens(d *di.Dime) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": d.Bindings()})
	}
}

// Token returns a handler describing the binding for the :name path
// parameter, matched the same way injection matches names.
func Token(d *di.Dime) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		b, ok := d.Lookup(token.String(name))
		if !ok {
			respondWithError(c, errors.Injection(name, fmt.Sprintf("Couldn't find value for token `%s`!", name)))
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": b})
	}
}

// Version returns a handler that reports the linked dime version.
func Version() gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.Get()
		c.JSON(http.StatusOK, gin.H{
			"version":    v.Version,
			"sum":        v.Sum,
			"go_version": v.GoVersion,
			"replaced":   v.Replaced,
		})
	}
}

// respondWithError writes err as a JSON body. Injection misses are 404,
// everything else 500.
func respondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.IsInjection(err) {
		status = http.StatusNotFound
	}
	body := gin.H{"message": err.Error()}
	if appErr, ok := errors.AsAppError(err); ok {
		body["code"] = appErr.Code
		body["details"] = appErr.Details
	}
	c.JSON(status, gin.H{"error": body})
}
