package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// redisNewClient 用來建立 redis client，測試可覆寫此變數。
var redisNewClient = func(opt *redis.Options) Cache {
	return redis.NewClient(opt)
}

// NewRedisClient 建立 *redis.Client 並先 Ping 一次，失敗時關閉連線
// addr: Redis 位址；password: 密碼，可空；db: 資料庫編號
func NewRedisClient(ctx context.Context, addr string, password string, db int) (Cache, error) {
	client := redisNewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("NewRedisClient: %w", err)
	}
	return client, nil
}

// Key 回傳單一 user 的快取 key
func Key(userID int) string {
	return fmt.Sprintf("user:%d", userID)
}
