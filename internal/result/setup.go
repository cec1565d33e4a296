package result

import (
	"fmt"

	"github.com/SlpAus/formula10-league-backend/internal/platform/database"
)

// PrimeModule 负责初始化result模块的数据库表结构
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&RaceResult{}); err != nil {
		return fmt.Errorf("无法迁移race_results表: %w", err)
	}
	fmt.Println("RaceResult数据库表迁移成功。")
	return nil
}
