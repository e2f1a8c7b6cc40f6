package handler

import (
	"context"
	"net/http"
	"time"

	"repairs/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// BreakerReporter exposes the gateway's circuit state; *gateway.Gateway
// implements it.
type BreakerReporter interface {
	BreakerState() string
}

// SessionBackend names where the session is persisted.
type SessionBackend interface {
	Backend() string
	IsAuthenticated() bool
}

// Health returns a JSON health check response.
// Checks the gateway breaker and Redis; rdb may be nil when e-mailing is off.
// Never exposes credentials or internals.
func Health(gw BreakerReporter, sess SessionBackend, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		body := gin.H{
			"gateway":       gw.BreakerState(),
			"session":       sess.Backend(),
			"authenticated": sess.IsAuthenticated(),
		}

		status := http.StatusOK
		if gw.BreakerState() == "open" {
			status = http.StatusServiceUnavailable
		}

		if rdb == nil {
			body["redis"] = "disabled"
		} else if rdb.Ping(ctx).Err() != nil {
			body["redis"] = "error"
			status = http.StatusServiceUnavailable
		} else {
			body["redis"] = "connected"
			if n, err := worker.DLQLength(ctx, rdb, worker.QueueInvoiceEmail); err == nil {
				body["dead_letters"] = n
			}
		}

		body["ok"] = status == http.StatusOK
		c.JSON(status, body)
	}
}
