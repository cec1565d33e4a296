package database

import (
	"context"
	"fmt"

	"github.com/SlpAus/formula10-league-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// RDB 是全局的Redis客户端，排行榜镜像和健康检查器共用
var RDB *redis.Client

// Ctx 是Redis操作使用的全局上下文
var Ctx = context.Background()

// InitRedis 建立与Redis的连接。
// Redis只承载可随时重建的排行榜镜像，SQLite才是事实来源；
// 启动时连不上Redis视为部署问题，直接panic退出。
func InitRedis(cfg config.RedisConfig) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		panic("无法连接到Redis: " + err.Error())
	}

	fmt.Println("Redis连接成功，排行榜镜像可用。")
}
