package service

import (
	"context"
	"testing"
	"time"

	"feedback_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCooldown(t *testing.T) {
	clock := testutil.NewClock(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	c := NewMemoryCooldown(clock.Now)
	ctx := context.Background()

	ok, err := c.Acquire(ctx, "otp:1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = c.Acquire(ctx, "otp:1", time.Minute)
	assert.False(t, ok)

	ok, _ = c.Acquire(ctx, "otp:2", time.Minute)
	assert.True(t, ok, "keys are independent")

	clock.Advance(time.Minute)
	ok, _ = c.Acquire(ctx, "otp:1", time.Minute)
	assert.True(t, ok)
}

func TestMemoryCooldownRelease(t *testing.T) {
	c := NewMemoryCooldown(nil)
	ctx := context.Background()

	ok, err := c.Acquire(ctx, "otp:1", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, c.Release(ctx, "otp:1"))
	ok, _ = c.Acquire(ctx, "otp:1", time.Hour)
	assert.True(t, ok)

	assert.NoError(t, c.Release(ctx, "never-held"))
}
