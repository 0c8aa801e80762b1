package inspect

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/dime/di"
	"github.com/kbukum/dime/logger"
)

// DefaultPrefix is the route group used by NewRouter.
const DefaultPrefix = "/dime"

// Register mounts the inspection routes on r:
//
//	GET /health         mount state
//	GET /tokens         all bindings
//	GET /tokens/:name   one binding
//	GET /version        linked dime version
func Register(r gin.IRouter, d *di.Dime) {
	r.GET("/health", Health(d))
	r.GET("/tokens", Tokens(d))
	r.GET("/tokens/:name", Token(d))
	r.GET("/version", Version())
}

// NewRouter returns a gin engine serving the inspection routes under
// DefaultPrefix, logging requests through d's logger.
func NewRouter(d *di.Dime) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestLogger(d.Logger()))
	Register(engine.Group(DefaultPrefix), d)
	return engine
}

// RequestLogger returns a Gin middleware that logs every request at debug
// level, or warn for 4xx and error for 5xx responses.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"method":              c.Request.Method,
			"path":                c.Request.URL.Path,
			"status":              status,
			logger.FieldDuration:  time.Since(start).Milliseconds(),
			logger.FieldOperation: "inspect",
		}

		switch {
		case status >= 500:
			log.Error("Request failed", fields)
		case status >= 400:
			log.Warn("Request rejected", fields)
		default:
			log.Debug("Request handled", fields)
		}
	}
}
