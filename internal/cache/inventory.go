package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PaintingKeyPrefix = "painting:%d"
	PaintingsListKey  = "paintings:all"
	UserKeyPrefix     = "user:%d"
)

const (
	PaintingTTL     = 30 * time.Minute
	PaintingListTTL = 2 * time.Minute
	UserTTL         = 5 * time.Minute
)

func PaintingKey(paintingID uint) string {
	return fmt.Sprintf(PaintingKeyPrefix, paintingID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePainting(ctx context.Context, paintingID uint) {
	Invalidate(ctx, PaintingKey(paintingID))
	Invalidate(ctx, PaintingsListKey)
}

func InvalidatePaintingsList(ctx context.Context) {
	Invalidate(ctx, PaintingsListKey)
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
