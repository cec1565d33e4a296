package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/formula10-league-backend/api"
	"github.com/SlpAus/formula10-league-backend/internal/platform/config"
	"github.com/SlpAus/formula10-league-backend/internal/platform/database"
	"github.com/SlpAus/formula10-league-backend/internal/platform/health"
	"github.com/SlpAus/formula10-league-backend/internal/platform/shutdown"
	"github.com/SlpAus/formula10-league-backend/internal/platform/startup"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 阻塞式获取初始Run ID，健康检查器据此检测Redis重启
	health.InitializeRunID()

	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	coordinator := shutdown.NewCoordinator()
	go health.StartRedisHealthCheck(coordinator.StopHealthCheck)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	coordinator.ListenForSignalsAndShutdown(server)
}
