package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before a block
	AttemptWindow time.Duration // how long failures are remembered
	BlockDuration time.Duration // how long a block lasts
}

func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// LoginTracker counts failed logins per username and blocks the name once
// the limit is reached. Without a Redis client it tracks nothing and never
// blocks.
type LoginTracker struct {
	client *goredis.Client
	config LoginTrackerConfig
	audit  *AuditLogger
}

func NewLoginTracker(client *goredis.Client, config LoginTrackerConfig, audit *AuditLogger) *LoginTracker {
	return &LoginTracker{client: client, config: config, audit: audit}
}

// Redis key patterns
const (
	failLoginPrefix    = "fail:login:user:"
	blockedLoginPrefix = "blocked:login:user:"
)

// KEYS[1] = counter key, ARGV[1] = TTL in seconds.
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// BlockedFor reports the remaining block time for username, zero when the
// name is not blocked.
func (lt *LoginTracker) BlockedFor(ctx context.Context, username string) (time.Duration, error) {
	if lt == nil || lt.client == nil {
		return 0, nil
	}
	ttl, err := lt.client.TTL(ctx, blockedLoginPrefix+normalize(username)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get block TTL: %w", err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// RecordFailure counts a failed attempt and blocks the name when it hits the
// limit. It returns true when this attempt caused the block.
func (lt *LoginTracker) RecordFailure(ctx context.Context, username string, ev AuditEvent) (bool, error) {
	if lt == nil || lt.client == nil {
		return false, nil
	}
	name := normalize(username)

	ttlSeconds := int(lt.config.AttemptWindow.Seconds())
	result, err := lt.client.Eval(ctx, incrWithTTLScript, []string{failLoginPrefix + name}, ttlSeconds).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment login failures: %w", err)
	}
	count, ok := result.(int64)
	if !ok {
		return false, errors.New("unexpected result type from Lua script")
	}
	if int(count) < lt.config.MaxAttempts {
		return false, nil
	}

	if err := lt.client.Set(ctx, blockedLoginPrefix+name, "1", lt.config.BlockDuration).Err(); err != nil {
		return false, fmt.Errorf("failed to set login block: %w", err)
	}
	_ = lt.client.Del(ctx, failLoginPrefix+name).Err()

	ev.Event = EventLoginBlocked
	ev.Subject = username
	ev.Reason = fmt.Sprintf("%d failed attempts", count)
	lt.audit.Log(ctx, ev)
	return true, nil
}

// Clear forgets failures after a successful login.
func (lt *LoginTracker) Clear(ctx context.Context, username string) error {
	if lt == nil || lt.client == nil {
		return nil
	}
	return lt.client.Del(ctx, failLoginPrefix+normalize(username)).Err()
}

func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
