package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/repository"
)

const (
	// IdempotencyKeyHeader carries the client-chosen key for safe retries.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL bounds how long a cached response is replayed.
	IdempotencyKeyTTL = 24 * time.Hour
)

type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// responseWriter tees the response body so it can be stored alongside
// the idempotency key.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// contextUserID reads the authenticated user from the gin context.
// Keys are scoped per user so two cashiers can reuse the same key.
func contextUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func replayCached(c *gin.Context, existing *entity.IdempotencyKey) {
	c.Header("X-Idempotency-Replayed", "true")
	c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
	c.Abort()
}

func captureAndRun(c *gin.Context) *responseWriter {
	blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
	c.Writer = blw
	c.Next()
	return blw
}

func storeKey(c *gin.Context, repo repository.IdempotencyRepository, key string, userID uuid.UUID, body string) {
	ikey := &entity.IdempotencyKey{
		Key:          key,
		UserID:       userID,
		Endpoint:     c.Request.Method + " " + c.FullPath(),
		ResponseCode: c.Writer.Status(),
		ResponseBody: body,
		ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
	}
	_ = repo.Create(c.Request.Context(), ikey)
}

// Idempotency replays the stored response when a mutating request
// repeats a key. Requests without a key pass through untouched.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID, ok := contextUserID(c)
		if !ok {
			c.Next()
			return
		}

		existing, err := config.Repo.GetByKey(c.Request.Context(), key, userID)
		if err != nil {
			// A broken key store must not block the till.
			c.Next()
			return
		}
		if existing != nil && !existing.IsExpired() {
			replayCached(c, existing)
			return
		}

		blw := captureAndRun(c)
		storeKey(c, config.Repo, key, userID, blw.body.String())
	}
}

// IdempotencyRequired rejects POSTs that arrive without a key. Used on
// the endpoints that move money, where a double-submit would create a
// second ledger row.
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			abortPlain(c, http.StatusBadRequest, "Idempotency-Key header is required for this request")
			return
		}

		userID, ok := contextUserID(c)
		if !ok {
			abortPlain(c, http.StatusUnauthorized, "User not authenticated")
			return
		}

		existing, err := config.Repo.GetByKey(c.Request.Context(), key, userID)
		if err != nil {
			abortPlain(c, http.StatusInternalServerError, "Failed to check idempotency key")
			return
		}
		if existing != nil && !existing.IsExpired() {
			replayCached(c, existing)
			return
		}

		blw := captureAndRun(c)

		// Only successful outcomes are worth replaying; a failed
		// attempt should be retryable with the same key.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			storeKey(c, config.Repo, key, userID, blw.body.String())
		}
	}
}

func abortPlain(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
	c.Abort()
}
