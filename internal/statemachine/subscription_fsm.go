package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/nichenav/nichenav-api/internal/models"
)

// SubscriptionFSM wraps a user's subscription status with its state machine
type SubscriptionFSM struct {
	user *models.User
	fsm  *fsm.FSM
}

// NewSubscriptionFSM creates a subscription state machine for a user
func NewSubscriptionFSM(user *models.User) *SubscriptionFSM {
	s := &SubscriptionFSM{
		user: user,
	}

	s.fsm = fsm.NewFSM(
		user.SubscriptionStatus,
		fsm.Events{
			// active → cancelled (user or admin cancels)
			{Name: "cancel", Src: []string{models.SubscriptionActive}, Dst: models.SubscriptionCancelled},

			// active/cancelled → expired (end date passed)
			{Name: "expire", Src: []string{models.SubscriptionActive, models.SubscriptionCancelled}, Dst: models.SubscriptionExpired},

			// cancelled/expired → active (plan change or renewal)
			{Name: "reactivate", Src: []string{models.SubscriptionCancelled, models.SubscriptionExpired}, Dst: models.SubscriptionActive},
		},
		fsm.Callbacks{},
	)

	return s
}

// Cancel transitions the subscription to cancelled
func (s *SubscriptionFSM) Cancel(ctx context.Context) error {
	if err := s.fsm.Event(ctx, "cancel"); err != nil {
		return fmt.Errorf("subscription cannot be cancelled in current state %s: %w", s.user.SubscriptionStatus, err)
	}
	s.user.SubscriptionStatus = s.fsm.Current()
	return nil
}

// Expire transitions the subscription to expired
func (s *SubscriptionFSM) Expire(ctx context.Context) error {
	if err := s.fsm.Event(ctx, "expire"); err != nil {
		return fmt.Errorf("subscription cannot expire in current state %s: %w", s.user.SubscriptionStatus, err)
	}
	s.user.SubscriptionStatus = s.fsm.Current()
	return nil
}

// Reactivate transitions the subscription back to active
func (s *SubscriptionFSM) Reactivate(ctx context.Context) error {
	if err := s.fsm.Event(ctx, "reactivate"); err != nil {
		return fmt.Errorf("subscription cannot be reactivated in current state %s: %w", s.user.SubscriptionStatus, err)
	}
	s.user.SubscriptionStatus = s.fsm.Current()
	return nil
}

// Current returns the current subscription status
func (s *SubscriptionFSM) Current() string {
	return s.fsm.Current()
}
