package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/thereayou/pelican/pkg/auth"
)

const UserIDKey = "userID"

// AuthMiddleware пускает запрос дальше только с валидным токеном,
// не попавшим в черный список
func AuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			abortUnauthorized(c, "missing or invalid token")
			return
		}

		authenticate(c, token, jwtManager, redisClient)
	}
}

// WSAuthMiddleware принимает токен и через query-параметр:
// браузерный WebSocket не выставляет заголовки
func WSAuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token, _ = auth.ExtractTokenFromHeader(c.Request)
		}

		if token == "" {
			abortUnauthorized(c, "missing token")
			return
		}

		authenticate(c, token, jwtManager, redisClient)
	}
}

// authenticate проверяет черный список и подпись, кладет userID в контекст
func authenticate(c *gin.Context, token string, jwtManager *auth.JWTManager, redisClient *redis.Client) {
	exists, err := redisClient.Exists(c.Request.Context(), "blacklist:"+token).Result()
	if err != nil || exists > 0 {
		abortUnauthorized(c, "token is revoked")
		return
	}

	claims, err := jwtManager.Verify(token)
	if err != nil {
		abortUnauthorized(c, "invalid token")
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		abortUnauthorized(c, "invalid token")
		return
	}

	c.Set(UserIDKey, userID)
	c.Next()
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
