// Package api holds the HTTP handlers. Each handler owns its service
// dependencies and registers its own routes on the versioned group.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessionHeader carries the client-generated session id for the
// recipe endpoints.
const sessionHeader = "X-Session-ID"

// currentUserID extracts the authenticated user id set by the auth
// middleware. The second return is false when the request is not
// authenticated; the handler must abort in that case.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}

// sessionID extracts the session header, aborting with 400 when it is
// missing.
func sessionID(c *gin.Context) (string, bool) {
	id := c.GetHeader(sessionHeader)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + sessionHeader + " header"})
		return "", false
	}
	return id, true
}
