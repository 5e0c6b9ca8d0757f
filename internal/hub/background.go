package hub

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Run closes idle sessions until ctx is done, then closes everything left.
func (h *Hub) Run(ctx context.Context) {
	if h.opts.IdleTTL <= 0 {
		<-ctx.Done()
		h.Close(context.WithoutCancel(ctx))
		return
	}

	interval := max(h.opts.IdleTTL/4, 10*time.Millisecond)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "Idle session cleanup started", "ttl", h.opts.IdleTTL, "interval", interval)
	for {
		select {
		case <-ctx.Done():
			h.Close(context.WithoutCancel(ctx))
			slog.Info("Hub stopped")
			return
		case now := <-ticker.C:
			h.cleanupIdle(ctx, now)
		}
	}
}

// cleanupIdle removes sessions that have no subscribers and have not changed
// for longer than the idle TTL.
func (h *Hub) cleanupIdle(ctx context.Context, now time.Time) int {
	ctx, span := tracer.Start(ctx, "hub.cleanupIdle")
	defer span.End()

	h.mu.RLock()
	var idle []string
	for id, s := range h.sessions {
		if s.SubscriberCount() == 0 && now.Sub(s.Room.LastActive()) > h.opts.IdleTTL {
			idle = append(idle, id)
		}
	}
	h.mu.RUnlock()

	removed := 0
	for _, id := range idle {
		if err := h.Remove(ctx, id, ReasonIdle); err == nil {
			removed++
		}
	}
	span.SetAttributes(attribute.Int("sessions.removed", removed))
	return removed
}
