package jobs

import (
	"context"
	"time"

	"academyhub-backend/internal/logger"
)

// SweepExpiredInvitations deletes pending invitations whose expiry passed
// more than the configured grace period ago. The grace window keeps
// recently expired rows around so support can still inspect them.
func (jr *JobRunner) SweepExpiredInvitations() {
	jr.runWithRecovery("SweepExpiredInvitations", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		cutoff := time.Now().UTC().Add(-jr.config.SweepGrace())
		deleted, err := jr.store.Invitations().DeleteExpiredBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to sweep expired invitations", "error", err)
			return
		}

		logger.Info("Swept expired invitations", "deleted", deleted, "cutoff", cutoff)
	})
}
