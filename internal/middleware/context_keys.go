package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the acting user's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// actorHeader names the request header carrying the acting user's identifier.
// Authentication happens upstream of this service; the header is trusted.
const actorHeader = "X-Actor-ID"

// defaultActorID is recorded on audit fields when no actor header is present,
// e.g. for scheduled jobs or local tooling.
const defaultActorID = "system"

// ActorMiddleware creates a Gin middleware handler that resolves the acting
// user for audit fields from the request headers.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(actorHeader)
		if actorID == "" {
			actorID = defaultActorID
		}
		c.Set(string(actorIDKey), actorID)
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting user's ID from the Gin context.
// It returns the default actor when the middleware has not run.
func GetActorIDFromContext(c *gin.Context) string {
	actorVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return defaultActorID
	}

	actorID, ok := actorVal.(string)
	if !ok || actorID == "" {
		return defaultActorID
	}

	return actorID
}
