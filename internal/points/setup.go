package points

import (
	"fmt"

	"github.com/SlpAus/formula10-league-backend/internal/platform/database"
)

// PrimeModule 预热积分模型，并在Redis可用时重写排行榜镜像。
// points模块没有自己的数据库表，全部输入来自catalog/guess/result。
func PrimeModule() error {
	if _, err := CurrentRaceModel(); err != nil {
		return fmt.Errorf("无法预热玩家积分模型: %w", err)
	}
	if _, err := CurrentDriverModel(); err != nil {
		return fmt.Errorf("无法预热车手积分模型: %w", err)
	}
	if _, err := CurrentSeasonModel(); err != nil {
		return fmt.Errorf("无法预热赛季竞猜评定: %w", err)
	}

	if database.IsRedisHealthy() {
		if err := RefreshMirror(); err != nil {
			// 镜像失败不阻止启动，接口会降级为直接计算
			fmt.Printf("启动时重写排行榜镜像失败: %v\n", err)
		}
	}

	fmt.Println("积分模型预热完成。")
	return nil
}
