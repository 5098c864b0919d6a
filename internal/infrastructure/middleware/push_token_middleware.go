package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"mall_social_server/internal/config"
	"mall_social_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// PushTokenAuth 服务端直推接口的静态令牌校验
// 仅供可信后端调用，支持 Authorization: Bearer 或 ?token= 两种携带方式
// 令牌常数时间比较，校验失败统一返回 Forbidden，不区分原因
func PushTokenAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := config.GetConfig().SupportConfig.PushToken
		if expected == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code": errorx.CodeForbidden,
				"msg":  errorx.ErrForbidden.Msg,
			})
			return
		}

		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code": errorx.CodeForbidden,
				"msg":  errorx.ErrForbidden.Msg,
			})
			return
		}
		c.Next()
	}
}
