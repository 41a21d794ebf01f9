package statemachine

import (
	"context"
	"testing"

	"github.com/nichenav/nichenav-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionFSM_CancelFromActive(t *testing.T) {
	user := &models.User{SubscriptionStatus: models.SubscriptionActive}
	s := NewSubscriptionFSM(user)

	require.NoError(t, s.Cancel(context.Background()))
	assert.Equal(t, models.SubscriptionCancelled, user.SubscriptionStatus)
	assert.Equal(t, models.SubscriptionCancelled, s.Current())
}

func TestSubscriptionFSM_CancelFromExpiredFails(t *testing.T) {
	user := &models.User{SubscriptionStatus: models.SubscriptionExpired}
	s := NewSubscriptionFSM(user)

	err := s.Cancel(context.Background())
	assert.Error(t, err)
	assert.Equal(t, models.SubscriptionExpired, user.SubscriptionStatus)
}

func TestSubscriptionFSM_ExpireFromActiveAndCancelled(t *testing.T) {
	for _, from := range []string{models.SubscriptionActive, models.SubscriptionCancelled} {
		user := &models.User{SubscriptionStatus: from}
		s := NewSubscriptionFSM(user)

		require.NoError(t, s.Expire(context.Background()))
		assert.Equal(t, models.SubscriptionExpired, user.SubscriptionStatus)
	}
}

func TestSubscriptionFSM_ReactivateLifecycle(t *testing.T) {
	user := &models.User{SubscriptionStatus: models.SubscriptionActive}
	s := NewSubscriptionFSM(user)

	require.NoError(t, s.Cancel(context.Background()))
	require.NoError(t, s.Reactivate(context.Background()))
	assert.Equal(t, models.SubscriptionActive, user.SubscriptionStatus)
}

func TestSubscriptionFSM_ReactivateFromActiveFails(t *testing.T) {
	user := &models.User{SubscriptionStatus: models.SubscriptionActive}
	s := NewSubscriptionFSM(user)

	err := s.Reactivate(context.Background())
	assert.Error(t, err)
	assert.Equal(t, models.SubscriptionActive, user.SubscriptionStatus)
}
