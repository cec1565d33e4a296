package startup

import (
	"fmt"

	"github.com/SlpAus/formula10-league-backend/internal/catalog"
	"github.com/SlpAus/formula10-league-backend/internal/guess"
	"github.com/SlpAus/formula10-league-backend/internal/points"
	"github.com/SlpAus/formula10-league-backend/internal/result"
)

// InitializeApplication 是应用首次启动时执行的总入口。
// 依赖顺序：catalog先迁移并加载参照数据，guess/result只迁移表，
// points最后预热积分模型并重写排行榜镜像。
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := catalog.PrimeModule(); err != nil {
		return err
	}
	if err := result.PrimeModule(); err != nil {
		return err
	}
	if err := guess.PrimeModule(); err != nil {
		return err
	}
	if err := points.PrimeModule(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildMirror 在运行时热重建Redis排行榜镜像。
// 健康检查器在检测到Redis重启后调用。
func RebuildMirror() error {
	fmt.Println("开始排行榜镜像热重建...")
	if err := points.RefreshMirror(); err != nil {
		return err
	}
	fmt.Println("排行榜镜像热重建完成。")
	return nil
}
