package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/gold2201/LocalNetworkProject/internal/i18n"
)

// Language stores the negotiated response language under cnst.XLang
func Language(defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(cnst.XLang, i18n.LanguageFromRequest(c.Request, defaultLang))
		c.Next()
	}
}
