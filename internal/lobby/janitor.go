package lobby

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// StartJanitor sweeps idle sessions every interval until ctx is done. A
// non-positive interval disables it.
func (st *Store) StartJanitor(ctx context.Context, interval, maxAge time.Duration) {
	if interval <= 0 {
		log.Info().Msg("session janitor disabled")
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				removed := st.Sweep(now, maxAge)
				if len(removed) > 0 {
					log.Info().Strs("game_ids", removed).Int("remaining", st.Len()).Msg("sessions_reaped")
				}
			}
		}
	}()
}
