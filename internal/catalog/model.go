package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Team 定义了车队在SQLite数据库中的持久化模型。
type Team struct {
	gorm.Model

	// Name 是车队的显示名称，作为业务逻辑中的主键使用
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Driver 定义了车手在SQLite数据库中的持久化模型。
// 每个车手恰好归属一支车队，换队以停用旧记录、新建新记录的方式表达。
type Driver struct {
	gorm.Model

	// Name 是车手的全名，作为业务逻辑中的主键使用
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// Abbr 是车手的三字母缩写，例如 "VER"
	Abbr string `gorm:"uniqueIndex;not null" json:"abbr"`

	// CountryCode 是车手国籍的两字母代码
	CountryCode string `json:"countryCode"`

	// TeamName 是车手归属车队的名称
	TeamName string `gorm:"index;not null" json:"teamName"`

	// Active 标记车手当前是否参赛。停用的车手仍参与历史积分计算。
	Active bool `json:"active"`
}

// Race 定义了分站比赛在SQLite数据库中的持久化模型。
type Race struct {
	gorm.Model

	// Number 是分站的赛季序号，从1开始，定义了时间顺序和积分数组下标
	Number int `gorm:"uniqueIndex;not null" json:"number"`

	// Name 是分站的显示名称，例如 "Monza"
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// Date 是比赛开始时间，竞猜锁定以它为准
	Date time.Time `json:"date"`

	// PlaceToGuess 是本站要求竞猜的完赛名次，例如10表示猜P10
	PlaceToGuess int `json:"placeToGuess"`

	// HasSprint 标记本站是否包含冲刺赛
	HasSprint bool `json:"hasSprint"`
}

// User 定义了玩家在SQLite数据库中的持久化模型。
type User struct {
	gorm.Model

	// Name 是玩家的显示名称，作为业务逻辑中的主键使用
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// Enabled 标记玩家是否参与排行。禁用的玩家保留历史记录但不进入任何统计。
	Enabled bool `json:"enabled"`
}
