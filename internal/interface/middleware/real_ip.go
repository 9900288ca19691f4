package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP resolves the client IP (key: "real_ip") for rate limit keys.
// CF-Connecting-IP wins over X-Forwarded-For; c.ClientIP() is the fallback.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := headerIP(c.GetHeader("CF-Connecting-IP"))
		if ip == "" {
			ip = forwardedIP(c.GetHeader("X-Forwarded-For"))
		}
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set("real_ip", ip)
		c.Next()
	}
}

func headerIP(v string) string {
	if ip := net.ParseIP(strings.TrimSpace(v)); ip != nil {
		return ip.String()
	}
	return ""
}

// forwardedIP takes the left-most entry, the original client.
func forwardedIP(xff string) string {
	if xff == "" {
		return ""
	}
	first, _, _ := strings.Cut(xff, ",")
	return headerIP(first)
}
