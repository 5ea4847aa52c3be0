package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-advisor/internal/domain/auth"
)

const dashboardClaimsKey = "dashboard_claims"

func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(dashboardClaimsKey, claims)
}

// dashboardViewer names the authenticated caller for logs: the Google email
// when present, otherwise the token subject. Empty when auth is off.
func dashboardViewer(c *gin.Context) string {
	value, ok := c.Get(dashboardClaimsKey)
	if !ok {
		return ""
	}
	claims, ok := value.(auth.Claims)
	if !ok {
		return ""
	}
	if claims.Email != "" {
		return claims.Email
	}
	return claims.Subject
}
