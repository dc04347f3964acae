package port

import (
	"context"
	"time"
)

// CachePort - хранилище закэшированных ответов CMS.
// Get возвращает found=false, если ключа нет или он истек.
type CachePort interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
