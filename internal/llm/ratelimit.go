package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitedClient paces calls to an underlying Client with a token bucket.
// Waiting honours the caller's context; a cancelled wait is reported as FailureUnavailable.
type RateLimitedClient struct {
	next    Client
	limiter *rate.Limiter
}

// RateLimited wraps next so that at most requestsPerMinute calls start per minute,
// with bursts up to burst. A non-positive requestsPerMinute returns next unchanged.
func RateLimited(next Client, requestsPerMinute, burst int) Client {
	if requestsPerMinute <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(float64(requestsPerMinute) / 60.0)
	return &RateLimitedClient{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (c *RateLimitedClient) wait(ctx context.Context, tier ModelTier) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return newCompletionError(c.next.GetModel(tier), FailureUnavailable, err)
	}
	return nil
}

// GenerateContent waits for a token, then delegates.
func (c *RateLimitedClient) GenerateContent(ctx context.Context, system, prompt string, tier ModelTier) (string, error) {
	if err := c.wait(ctx, tier); err != nil {
		return "", err
	}
	return c.next.GenerateContent(ctx, system, prompt, tier)
}

// GenerateJSON waits for a token, then delegates.
func (c *RateLimitedClient) GenerateJSON(ctx context.Context, system, prompt string, tier ModelTier) (string, error) {
	if err := c.wait(ctx, tier); err != nil {
		return "", err
	}
	return c.next.GenerateJSON(ctx, system, prompt, tier)
}

// GetModel delegates.
func (c *RateLimitedClient) GetModel(tier ModelTier) string {
	return c.next.GetModel(tier)
}

// Close delegates.
func (c *RateLimitedClient) Close() error {
	return c.next.Close()
}
