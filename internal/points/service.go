package points

import (
	"fmt"
	"sort"
	"sync"

	"github.com/SlpAus/formula10-league-backend/internal/platform/database"
	"github.com/SlpAus/formula10-league-backend/internal/platform/generation"
	"github.com/redis/go-redis/v9"
)

// Redis中的排行榜镜像键。镜像只是积分模型的只读投影，
// SQLite始终是事实来源，Redis不可用时接口直接读模型降级。
const (
	UserRankingKey   = "ranking:users"
	DriverRankingKey = "ranking:drivers"
	TeamRankingKey   = "ranking:teams"
)

// LeaderboardEntry 是排行榜镜像中的一行。
type LeaderboardEntry struct {
	Name     string
	Points   int
	Position int
}

// mirrorState 记录镜像对应的generation向量，过期时重写。
var mirrorState = struct {
	mu       sync.Mutex
	primed   bool
	recorded generation.Vector
}{}

// RefreshMirror 把三张排行榜重写进Redis的Sorted Set。
// 调用方需要确保Redis处于健康状态。
func RefreshMirror() error {
	// 向量必须在构建模型之前采样：构建期间发生的写入
	// 最多让镜像多重建一次，不会把过期数据标成新鲜
	recorded := generation.Current()

	raceModel, err := CurrentRaceModel()
	if err != nil {
		return err
	}
	driverModel, err := CurrentDriverModel()
	if err != nil {
		return err
	}

	pipe := database.RDB.Pipeline()
	pipe.Del(database.Ctx, UserRankingKey, DriverRankingKey, TeamRankingKey)
	for name, total := range raceModel.Totals {
		pipe.ZAdd(database.Ctx, UserRankingKey, redis.Z{Score: float64(total), Member: name})
	}
	for name, total := range driverModel.DriverTotals {
		pipe.ZAdd(database.Ctx, DriverRankingKey, redis.Z{Score: float64(total), Member: name})
	}
	for name, total := range driverModel.TeamTotals {
		pipe.ZAdd(database.Ctx, TeamRankingKey, redis.Z{Score: float64(total), Member: name})
	}
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("重写排行榜镜像到Redis失败: %w", err)
	}

	markMirrorFresh(recorded)

	fmt.Printf("排行榜镜像已重写: %d 名玩家 / %d 名车手 / %d 支车队。\n",
		len(raceModel.Totals), len(driverModel.DriverTotals), len(driverModel.TeamTotals))
	return nil
}

// markMirrorFresh 记录镜像对应的generation向量。
func markMirrorFresh(recorded generation.Vector) {
	mirrorState.mu.Lock()
	mirrorState.primed = true
	mirrorState.recorded = recorded
	mirrorState.mu.Unlock()
}

// mirrorStale 判断镜像是否落后于当前数据。
func mirrorStale() bool {
	mirrorState.mu.Lock()
	defer mirrorState.mu.Unlock()
	return !mirrorState.primed || generation.Stale(generation.All, mirrorState.recorded)
}

// ensureMirrorFresh 在镜像落后于当前数据时重写它。
func ensureMirrorFresh() error {
	if !mirrorStale() {
		return nil
	}
	return RefreshMirror()
}

// leaderboardKinds 把API里的榜单名映射到Redis键。
var leaderboardKinds = map[string]string{
	"users":   UserRankingKey,
	"drivers": DriverRankingKey,
	"teams":   TeamRankingKey,
}

// Leaderboard 返回指定榜单，按积分降序并带共享位次。
// Redis健康时从镜像读取，否则直接从积分模型降级计算。
// 第二个返回值表示数据是否来自镜像。
func Leaderboard(kind string) ([]LeaderboardEntry, bool, error) {
	key, ok := leaderboardKinds[kind]
	if !ok {
		return nil, false, fmt.Errorf("未知的榜单类型 %q", kind)
	}

	if database.IsRedisHealthy() {
		entries, err := leaderboardFromMirror(key)
		if err == nil {
			return entries, true, nil
		}
		fmt.Printf("从Redis镜像读取榜单失败，降级为直接计算: %v\n", err)
	}

	entries, err := leaderboardFromModels(kind)
	if err != nil {
		return nil, false, err
	}
	return entries, false, nil
}

// leaderboardFromMirror 从Redis镜像读取榜单并重建共享位次。
func leaderboardFromMirror(key string) ([]LeaderboardEntry, error) {
	if err := ensureMirrorFresh(); err != nil {
		return nil, err
	}

	members, err := database.RDB.ZRevRangeWithScores(database.Ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("无法读取Redis键 %s: %w", key, err)
	}

	totals := make(map[string]int, len(members))
	for _, member := range members {
		name, ok := member.Member.(string)
		if !ok {
			return nil, fmt.Errorf("Redis键 %s 含有非字符串成员", key)
		}
		totals[name] = int(member.Score)
	}
	return entriesFromTotals(totals), nil
}

// leaderboardFromModels 绕过Redis直接从积分模型生成榜单。
func leaderboardFromModels(kind string) ([]LeaderboardEntry, error) {
	switch kind {
	case "users":
		model, err := CurrentRaceModel()
		if err != nil {
			return nil, err
		}
		return entriesFromTotals(model.Totals), nil
	case "drivers":
		model, err := CurrentDriverModel()
		if err != nil {
			return nil, err
		}
		return entriesFromTotals(model.DriverTotals), nil
	case "teams":
		model, err := CurrentDriverModel()
		if err != nil {
			return nil, err
		}
		return entriesFromTotals(model.TeamTotals), nil
	}
	return nil, fmt.Errorf("未知的榜单类型 %q", kind)
}

// entriesFromTotals 把总分表转换为带共享位次的有序榜单。
func entriesFromTotals(totals map[string]int) []LeaderboardEntry {
	standings := rankTotals(totals)

	entries := make([]LeaderboardEntry, 0, len(totals))
	for name, total := range totals {
		entries = append(entries, LeaderboardEntry{
			Name:     name,
			Points:   total,
			Position: standings.PositionOf[name],
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Position != entries[j].Position {
			return entries[i].Position < entries[j].Position
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
