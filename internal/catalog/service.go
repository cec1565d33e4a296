package catalog

import (
	"errors"
	"fmt"

	"github.com/SlpAus/formula10-league-backend/internal/platform/database"
	"github.com/SlpAus/formula10-league-backend/internal/platform/generation"
	"github.com/SlpAus/formula10-league-backend/pkg/lookup"
)

// ErrUserExists 表示尝试添加的玩家名称已被占用。
var ErrUserExists = errors.New("catalog: user already exists")

// MinUserNameLength 是玩家名称的最小长度。
const MinUserNameLength = 3

// AddUser 添加一名新的启用玩家。
// 提交成功后换发Users代号，使所有依赖用户名单的缓存失效。
func AddUser(name string) (User, error) {
	if len(name) < MinUserNameLength {
		return User{}, fmt.Errorf("玩家名称 %q 过短，至少需要%d个字符", name, MinUserNameLength)
	}

	_, err := UserByName(name)
	if err == nil {
		return User{}, fmt.Errorf("玩家 %q: %w", name, ErrUserExists)
	}
	if !errors.Is(err, lookup.ErrNotFound) {
		return User{}, err
	}

	user := User{Name: name, Enabled: true}
	if err := database.DB.Create(&user).Error; err != nil {
		return User{}, fmt.Errorf("无法在SQLite中创建玩家 %q: %w", name, err)
	}

	generation.Bump(generation.Users)
	return user, nil
}

// SetUserEnabled 启用或禁用一名玩家。
// 禁用只影响统计口径，历史竞猜记录全部保留。
func SetUserEnabled(name string, enabled bool) (User, error) {
	user, err := UserByName(name)
	if err != nil {
		return User{}, err
	}
	if user.Enabled == enabled {
		return user, nil
	}

	user.Enabled = enabled
	if err := database.DB.Save(&user).Error; err != nil {
		return User{}, fmt.Errorf("无法更新玩家 %q 的启用状态: %w", name, err)
	}

	generation.Bump(generation.Users)
	return user, nil
}
