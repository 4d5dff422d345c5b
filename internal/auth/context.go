package auth

import "github.com/gin-gonic/gin"

// GetOperatorID returns the authenticated operator's ID or empty string.
func GetOperatorID(c *gin.Context) string {
	if v, ok := c.Get("operatorID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetOperatorEmail returns the authenticated operator's email or empty string.
func GetOperatorEmail(c *gin.Context) string {
	if v, ok := c.Get("operatorEmail"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetOperatorIsAdmin reports whether the authenticated operator is an admin.
func GetOperatorIsAdmin(c *gin.Context) bool {
	if v, ok := c.Get("operatorIsAdmin"); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}
