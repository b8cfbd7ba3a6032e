package alert

import (
	"context"
	"time"
)

type Publisher interface {
	Publish(ctx context.Context, a AttendanceAlert) error
}

// Deduper claims a key for ttl. Claim returns false when the key is already held.
type Deduper interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type CompanyLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}
