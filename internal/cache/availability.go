package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/studysync/tutor-scheduler/internal/domain/booking"
)

// Availability caches computed slot lists per teacher and day. Entries are
// short-lived and invalidated on every booking change, so a stale read can
// only survive until the event dispatcher gets to it.
type Availability struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewAvailability returns nil when no Redis address is configured; all
// methods tolerate a nil receiver, so callers need no feature flag.
func NewAvailability(addr string, logger *zap.Logger) *Availability {
	if addr == "" {
		return nil
	}

	return &Availability{
		rdb:    redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    5 * time.Minute,
		logger: logger,
	}
}

func key(teacherID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s", teacherID, date)
}

func (c *Availability) Get(ctx context.Context, teacherID uint, date string) ([]domain.TimeSlot, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(teacherID, date)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("availability cache read failed", zap.Error(err))
		return nil, false
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *Availability) Set(ctx context.Context, teacherID uint, date string, slots []domain.TimeSlot) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key(teacherID, date), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("availability cache write failed", zap.Error(err))
	}
}

func (c *Availability) Invalidate(ctx context.Context, teacherID uint, date string) {
	if c == nil {
		return
	}

	if err := c.rdb.Del(ctx, key(teacherID, date)).Err(); err != nil {
		c.logger.Warn("availability cache invalidation failed", zap.Error(err))
	}
}
