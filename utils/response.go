package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONConflict carries the structured conflict reason alongside the
// message so clients can branch on the code.
func JSONConflict(c *gin.Context, code int, reason, message string) {
	c.JSON(code, gin.H{"success": false, "error": message, "reason": reason})
}
