package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for failed-login lockout
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before the email is locked
	AttemptWindow time.Duration // window in which failures are counted
	BlockDuration time.Duration // lock duration once MaxAttempts is reached
}

func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// LoginTracker counts failed logins per email in Redis. With no client it
// never blocks.
type LoginTracker struct {
	client *goredis.Client
	config LoginTrackerConfig
	logger *SecurityLogger
}

func NewLoginTracker(client *goredis.Client, config LoginTrackerConfig, logger *SecurityLogger) *LoginTracker {
	if config.MaxAttempts <= 0 {
		config = DefaultLoginTrackerConfig()
	}
	if logger == nil {
		logger = DefaultLogger()
	}
	return &LoginTracker{client: client, config: config, logger: logger}
}

const (
	failLoginPrefix    = "fail:login:user:"
	blockedLoginPrefix = "blocked:login:user:"
)

// KEYS[1] = counter key, ARGV[1] = TTL in seconds. Returns the new count.
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsBlocked reports whether the email is locked and for how long.
func (lt *LoginTracker) IsBlocked(ctx context.Context, email string) (bool, time.Duration, error) {
	if lt.client == nil {
		return false, 0, nil
	}

	ttl, err := lt.client.TTL(ctx, blockedLoginPrefix+normalizeEmail(email)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("check login block: %w", err)
	}
	if ttl <= 0 {
		return false, 0, nil
	}
	return true, ttl, nil
}

// RecordFailure counts a failed attempt and locks the email at MaxAttempts.
func (lt *LoginTracker) RecordFailure(ctx context.Context, email, ip, requestID string) error {
	lt.logger.LogLoginFailed(ctx, email, ip, requestID, "invalid_credentials")

	if lt.client == nil {
		return nil
	}

	key := normalizeEmail(email)
	result, err := lt.client.Eval(ctx, incrWithTTLScript, []string{failLoginPrefix + key}, int(lt.config.AttemptWindow.Seconds())).Result()
	if err != nil {
		return fmt.Errorf("record failed login: %w", err)
	}
	count, ok := result.(int64)
	if !ok {
		return errors.New("unexpected result type from Lua script")
	}

	if int(count) >= lt.config.MaxAttempts {
		if err := lt.client.Set(ctx, blockedLoginPrefix+key, "1", lt.config.BlockDuration).Err(); err != nil {
			return fmt.Errorf("set login block: %w", err)
		}
		lt.logger.Log(ctx, SecurityEvent{
			Event:        EventLoginBlocked,
			SubjectType:  "email",
			SubjectValue: email,
			IP:           ip,
			RequestID:    requestID,
			Details:      map[string]interface{}{"reason": "locked", "block_minutes": int(lt.config.BlockDuration.Minutes())},
		})
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (lt *LoginTracker) Reset(ctx context.Context, email string) error {
	if lt.client == nil {
		return nil
	}
	return lt.client.Del(ctx, failLoginPrefix+normalizeEmail(email)).Err()
}
