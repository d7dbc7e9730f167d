package services

import (
	"context"
	"fmt"
)

// Cache holds JSON snapshots of assembled views. Implementations must treat
// every failure as a miss; the store stays the source of truth.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) bool
	SetJSON(ctx context.Context, key string, v any)
	InvalidateByPrefix(ctx context.Context, prefix string)
}

type noCache struct{}

func (noCache) GetJSON(context.Context, string, any) bool { return false }
func (noCache) SetJSON(context.Context, string, any) {}
func (noCache) InvalidateByPrefix(context.Context, string) {}

func orNoCache(c Cache) Cache {
	if c == nil {
		return noCache{}
	}
	return c
}

func feedPrefix(subredditID uint) string {
	return fmt.Sprintf("cache:feed:%d:", subredditID)
}

func feedKey(subredditID uint, page Page) string {
	return fmt.Sprintf("%slimit=%d:offset=%d", feedPrefix(subredditID), page.Limit, page.Offset)
}

func profileKey(userID uint) string {
	return fmt.Sprintf("cache:profile:%d", userID)
}
