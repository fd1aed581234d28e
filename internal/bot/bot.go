package bot

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// pollErrorBackoff is how long the loop sleeps after a failed getUpdates call
// before trying again.
const pollErrorBackoff = 5 * time.Second

// Run long-polls for updates until ctx is cancelled. Each update is handled
// synchronously; ordering within a chat matters for the form states.
func (b *Bot) Run(ctx context.Context) error {
	me, err := b.api.GetMe(ctx)
	if err != nil {
		return err
	}
	b.logger.Info("bot started",
		zap.String("username", me.Username),
		zap.Int64("id", me.ID))

	var offset int64
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		updates, err := b.api.GetUpdates(ctx, offset, b.cfg.PollTimeoutSeconds)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			b.logger.Warn("poll failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(pollErrorBackoff):
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			b.HandleUpdate(ctx, u)
		}
	}
}
