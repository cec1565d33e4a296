package health

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/SlpAus/formula10-league-backend/internal/platform/database"
	"github.com/SlpAus/formula10-league-backend/internal/platform/startup"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

// getRedisRunID 从Redis服务器信息中提取run_id
func getRedisRunID() (string, error) {
	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()
	info, err := database.RDB.Info(ctx, "server").Result()
	if err != nil {
		return "", err
	}
	re := regexp.MustCompile(`run_id:([a-f0-9]+)`)
	matches := re.FindStringSubmatch(info)
	if len(matches) < 2 {
		return "", fmt.Errorf("无法在Redis INFO中找到run_id")
	}
	return matches[1], nil
}

// InitializeRunID 在应用启动时执行一次，获取并设置初始的run_id。
func InitializeRunID() {
	fmt.Println("正在获取初始Redis Run ID...")
	runID, err := getRedisRunID()
	if err != nil {
		panic(fmt.Sprintf("无法在启动时获取Redis Run ID，请检查Redis服务: %v", err))
	}
	database.SetInitialRunID(runID)
	fmt.Printf("获取初始Redis Run ID成功: %s\n", runID)
}

// triggerAtomicRebuild 执行一次原子的、自校验的镜像重建。
// 只有在重建期间Redis没有再次重启的情况下，才认为重建成功。
func triggerAtomicRebuild(idBeforeRebuild string) bool {
	fmt.Println("健康检查: 正在触发排行榜镜像重建...")
	if err := startup.RebuildMirror(); err != nil {
		fmt.Printf("健康检查错误: 镜像重建失败: %v\n", err)
		return false
	}

	idAfterRebuild, err := getRedisRunID()
	if err != nil {
		fmt.Println("健康检查错误: 镜像重建后无法连接到Redis，重建无效。")
		return false
	}
	if idBeforeRebuild != idAfterRebuild {
		fmt.Printf("健康检查错误: 镜像重建期间检测到Redis再次重启 (run_id: %s -> %s)。重建无效。\n", idBeforeRebuild, idAfterRebuild)
		return false
	}

	fmt.Println("健康检查: 排行榜镜像重建成功并通过原子性校验。")
	return true
}

// PerformCheck 执行一次完整的健康检查和可能的修复操作。
func PerformCheck() {
	currentRunID, err := getRedisRunID()
	if err != nil {
		// 无法连接到Redis，直接标记为不可用
		database.UpdateStatus(false, "")
		return
	}

	lastKnownRunID := database.GetLastKnownRunID()

	if currentRunID != lastKnownRunID {
		// 检测到Redis重启，丢失的镜像需要原子重建
		if triggerAtomicRebuild(currentRunID) {
			database.UpdateStatus(true, currentRunID)
		} else {
			database.UpdateStatus(false, "")
		}
	} else {
		database.UpdateStatus(true, currentRunID)
	}
}

// StartRedisHealthCheck 启动一个后台Goroutine来定期、阻塞式地执行健康检查。
// 向stop通道关闭信号后循环退出。
func StartRedisHealthCheck(stop <-chan struct{}) {
	fmt.Println("Redis健康检查器已启动。")
	timer := time.NewTimer(checkInterval)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			fmt.Println("Redis健康检查器已停止。")
			return
		case <-timer.C:
			PerformCheck()
			timer.Reset(checkInterval)
		}
	}
}
