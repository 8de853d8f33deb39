// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/merchio-backend/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", parseLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// parseLanguage picks the first preference of an Accept-Language header,
// e.g. "vi-VN,vi;q=0.9,en;q=0.8".
func parseLanguage(header string) string {
	if header == "" {
		return i18n.DefaultLang
	}

	first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
	// Convert common language codes
	switch strings.ToLower(first) {
	case "vi", "vi-vn", "vi_vn":
		return "vi"
	case "en", "en-us", "en-gb":
		return "en"
	default:
		return i18n.DefaultLang
	}
}
