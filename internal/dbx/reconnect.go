package dbx

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// Reconnect calls c.Connect up to attempts times with exponential backoff
// starting at base, which must be positive. The last connection error is
// returned when every attempt fails.
func Reconnect(ctx context.Context, c *Conn, attempts uint64, base time.Duration) error {
	if base <= 0 {
		return fmt.Errorf("reconnect backoff must be positive, got %s", base)
	}
	if attempts == 0 {
		attempts = 1
	}
	b := retry.WithMaxRetries(attempts-1, retry.NewExponential(base))

	var n uint64
	return retry.Do(ctx, b, func(ctx context.Context) error {
		n++
		if err := c.Connect(ctx); err != nil {
			c.log.Warn(ctx, "connect failed", "attempt", n, "of", attempts, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}
