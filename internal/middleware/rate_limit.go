package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"artesania_back_end/internal/database"
)

const (
	// Limites par endpoint
	LoginMaxAttempts    = 5
	RegisterMaxAttempts = 3

	// Durées de cooldown
	LoginCooldown    = 15 * time.Minute
	RegisterCooldown = 30 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par email
func LoginRateLimit() gin.HandlerFunc {
	return rateLimitByEmail("login", LoginMaxAttempts, LoginCooldown)
}

// RegisterRateLimit limite les créations de compte par email
func RegisterRateLimit() gin.HandlerFunc {
	return rateLimitByEmail("register", RegisterMaxAttempts, RegisterCooldown)
}

func rateLimitByEmail(scope string, maxAttempts int, cooldown time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := scope + "_attempts:" + input.Email
		cooldownKey := scope + "_cooldown:" + input.Email

		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives. Réessayez dans %d minutes", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= maxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", cooldown)
			database.Redis.Del(ctx, key)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives. Bloqué pendant %d minutes", int(cooldown.Minutes())),
				"retry_after": int(cooldown.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		// Incrémente après coup : seuls les échecs comptent
		if c.Writer.Status() == http.StatusUnauthorized || c.Writer.Status() == http.StatusBadRequest {
			pipe := database.Redis.TxPipeline()
			pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, cooldown)
			_, _ = pipe.Exec(ctx)
		} else if c.Writer.Status() < http.StatusBadRequest {
			database.Redis.Del(ctx, key)
		}
	}
}
