package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDKey  = "request_id"
	SessionIDKey  = "session_id"
	requestIDHdr  = "X-Request-ID"
	sessionIDHdr  = "X-Session-ID"
	defaultSessID = "default"
)

// RequestID assigns (or propagates) a request id and echoes it back so
// client logs can be correlated with server logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHdr)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(requestIDHdr, id)
		c.Next()
	}
}

// Session resolves the client session identifier. Each browser tab
// sends its own X-Session-ID so two tabs don't silently share one
// "current transaction" pointer; clients that send nothing share the
// default session (the single-scale shop case).
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionIDHdr)
		if id == "" {
			id = defaultSessID
		}
		c.Set(SessionIDKey, id)
		c.Next()
	}
}

// GetSessionID retrieves the resolved session id from the Gin context.
func GetSessionID(c *gin.Context) string {
	if id := c.GetString(SessionIDKey); id != "" {
		return id
	}
	return defaultSessID
}
