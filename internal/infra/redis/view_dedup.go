package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewKeyPrefix = "vidtube:view:"

// ViewDeduper 同一观看者在窗口期内重复观看只计一次
type ViewDeduper struct {
	client *redis.Client
	window time.Duration
}

func NewViewDeduper(client *redis.Client, window time.Duration) *ViewDeduper {
	return &ViewDeduper{client: client, window: window}
}

func viewKey(videoID int64, viewer string) string {
	return fmt.Sprintf("%s%d:%s", viewKeyPrefix, videoID, viewer)
}

// FirstView 窗口期内首次观看返回 true
func (d *ViewDeduper) FirstView(ctx context.Context, videoID int64, viewer string) (bool, error) {
	ok, err := d.client.SetNX(ctx, viewKey(videoID, viewer), 1, d.window).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx view key: %w", err)
	}
	return ok, nil
}
