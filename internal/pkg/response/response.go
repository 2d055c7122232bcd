package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every JSON endpoint answers with the same two-key envelope:
// {"ok": true, "result": <payload>} on success,
// {"ok": false, "result": "<reason>"} on failure.

func Ok(c *gin.Context, result any) {
	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"result": result,
	})
}

func Fail(c *gin.Context, statusCode int, reason string) {
	c.JSON(statusCode, gin.H{
		"ok":     false,
		"result": reason,
	})
}
