package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/memberly/memberly/internal/types"
)

func TestStatusAt(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, types.SubscriptionStatusActive, StatusAt(now.AddDate(0, -1, 0), now))
	assert.Equal(t, types.SubscriptionStatusActive, StatusAt(now, now))
	assert.Equal(t, types.SubscriptionStatusFuture, StatusAt(now.AddDate(0, 0, 1), now))
}
