package points

import (
	"sync"

	"github.com/SlpAus/formula10-league-backend/internal/platform/generation"
)

// 计分模型的记忆化缓存。每个条目声明自己依赖的generation类：
// 写路径Bump了其中任何一类，下次读取时条目自动重建，
// 不存在时间过期，也不需要手工维护失效键名。

type cacheEntry[T any] struct {
	mask generation.Class

	mu       sync.Mutex
	valid    bool
	recorded generation.Vector
	value    T
}

// get 返回缓存值，过期或为空时调用build重建。
// 代号向量在重建前采样：写路径先提交数据再Bump，
// 因此采样早于读取只会导致多一次重建，不会读到过期数据却被标记为新。
func (e *cacheEntry[T]) get(build func() (T, error)) (T, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.valid && !generation.Stale(e.mask, e.recorded) {
		return e.value, nil
	}

	recorded := generation.Current()
	value, err := build()
	if err != nil {
		var zero T
		return zero, err
	}

	e.value = value
	e.recorded = recorded
	e.valid = true
	return value, nil
}

var (
	raceModelCache = &cacheEntry[*RaceModel]{
		mask: generation.Users | generation.Results | generation.RaceGuesses,
	}
	driverModelCache = &cacheEntry[*DriverModel]{
		mask: generation.Results,
	}
	seasonModelCache = &cacheEntry[*SeasonModel]{
		mask: generation.Users | generation.Results | generation.SeasonGuesses,
	}
)

// CurrentRaceModel 返回当前的玩家积分模型，必要时重建。
func CurrentRaceModel() (*RaceModel, error) {
	return raceModelCache.get(buildRaceModel)
}

// CurrentDriverModel 返回当前的车手/车队积分模型，必要时重建。
func CurrentDriverModel() (*DriverModel, error) {
	return driverModelCache.get(buildDriverModel)
}

// CurrentSeasonModel 返回当前的赛季竞猜评定，必要时重建。
func CurrentSeasonModel() (*SeasonModel, error) {
	return seasonModelCache.get(buildSeasonModel)
}
