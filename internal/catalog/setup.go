package catalog

import (
	"fmt"

	"github.com/SlpAus/formula10-league-backend/internal/platform/database"
)

// PrimeModule 负责初始化catalog模块的数据库和内存仓库
func PrimeModule() error {
	// 1. 迁移数据库表结构
	if err := migrateDB(); err != nil {
		return err
	}
	// 2. 从数据库加载静态参照数据到内存仓库
	if err := InitializeRepository(); err != nil {
		return err
	}
	return nil
}

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&Team{}, &Driver{}, &Race{}, &User{}); err != nil {
		return fmt.Errorf("无法迁移catalog相关表: %w", err)
	}
	fmt.Println("Catalog数据库表迁移成功。")
	return nil
}
