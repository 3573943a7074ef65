package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClient struct {
	calls int
}

func (c *countingClient) GenerateContent(ctx context.Context, system, prompt string, tier ModelTier) (string, error) {
	c.calls++
	return "text", nil
}

func (c *countingClient) GenerateJSON(ctx context.Context, system, prompt string, tier ModelTier) (string, error) {
	c.calls++
	return "{}", nil
}

func (c *countingClient) GetModel(tier ModelTier) string { return "counting-model" }

func (c *countingClient) Close() error { return nil }

func TestRateLimited_Disabled(t *testing.T) {
	inner := &countingClient{}
	assert.Same(t, inner, RateLimited(inner, 0, 1))
}

func TestRateLimited_Delegates(t *testing.T) {
	inner := &countingClient{}
	client := RateLimited(inner, 600, 2)

	out, err := client.GenerateContent(context.Background(), "sys", "prompt", TierStandard)
	require.NoError(t, err)
	assert.Equal(t, "text", out)

	out, err = client.GenerateJSON(context.Background(), "sys", "prompt", TierLite)
	require.NoError(t, err)
	assert.Equal(t, "{}", out)

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, "counting-model", client.GetModel(TierLite))
	assert.NoError(t, client.Close())
}

func TestRateLimited_CancelledWait(t *testing.T) {
	inner := &countingClient{}
	// One request per minute with a burst of one: the second call must wait ~60s.
	client := RateLimited(inner, 1, 1)

	_, err := client.GenerateJSON(context.Background(), "", "first", TierLite)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = client.GenerateJSON(ctx, "", "second", TierLite)
	require.Error(t, err)
	assert.Equal(t, FailureUnavailable, KindOf(err))
	assert.Equal(t, 1, inner.calls)
}
