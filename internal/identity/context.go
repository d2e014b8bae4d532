package identity

import "github.com/gin-gonic/gin"

const contextKey = "callerID"

// CallerID returns the acting user's ID stored by the Required middleware,
// or an empty string when the request carried no identity.
func CallerID(c *gin.Context) string {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
