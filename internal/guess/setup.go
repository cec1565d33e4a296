package guess

import (
	"fmt"

	"github.com/SlpAus/formula10-league-backend/internal/platform/database"
)

// PrimeModule 负责初始化guess模块的数据库表结构
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&RaceGuess{}, &SeasonGuess{}, &SeasonGuessResult{}); err != nil {
		return fmt.Errorf("无法迁移guess相关表: %w", err)
	}
	fmt.Println("Guess数据库表迁移成功。")
	return nil
}
