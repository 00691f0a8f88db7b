package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BlockDemoUser rejects mutations from the shared demo account. It runs
// after RequireAuth, which is what computes the capability flag.
func BlockDemoUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsDemoFromContext(c) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"msg": "Demo User. Read Only!",
			})
			return
		}
		c.Next()
	}
}
