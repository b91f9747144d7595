package usecase

import (
	"context"
	"time"
)

// Pinger is anything the health check can probe, e.g. *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function such as redis.HealthCheck.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthUsecase interface {
	// Check reports each dependency as "ok" or "down" and whether all are ok.
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	deps    map[string]Pinger
	timeout time.Duration
}

func NewHealthUsecase(deps map[string]Pinger) HealthUsecase {
	return &healthUsecase{deps: deps, timeout: 2 * time.Second}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	out := map[string]string{"status": "ok"}
	healthy := true
	for name, dep := range u.deps {
		if dep == nil {
			continue
		}
		pingCtx, cancel := context.WithTimeout(ctx, u.timeout)
		err := dep.Ping(pingCtx)
		cancel()
		if err != nil {
			out[name] = "down"
			healthy = false
			continue
		}
		out[name] = "ok"
	}
	if !healthy {
		out["status"] = "degraded"
	}
	return out, healthy
}
