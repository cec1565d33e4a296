package shutdown

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Coordinator 负责编排应用程序的优雅停机流程。
// SQLite是唯一的事实来源，排行榜镜像可以随时重建，
// 因此停机只需要排空HTTP服务器并停掉后台检查器。
type Coordinator struct {
	// StopHealthCheck 关闭后健康检查器退出
	StopHealthCheck chan struct{}
}

// NewCoordinator 创建一个新的停机协调器。
func NewCoordinator() *Coordinator {
	return &Coordinator{
		StopHealthCheck: make(chan struct{}),
	}
}

// ListenForSignalsAndShutdown 启动信号监听并阻塞，直到停机流程完成。
func (c *Coordinator) ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	fmt.Println("\n收到关闭信号，开始优雅停机...")

	// 关闭HTTP服务器，允许正在进行的请求完成
	httpTimeout := 15 * time.Second
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), httpTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Gin服务器关闭错误: %v\n", err)
	} else {
		fmt.Println("Gin服务器已关闭。")
	}

	close(c.StopHealthCheck)

	fmt.Println("优雅停机完成。")
}
