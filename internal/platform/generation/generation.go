package generation

import (
	"sync"

	"github.com/google/uuid"
)

// 包generation实现按依赖类划分的快照代号（generation ID）。
// 每一类输入数据（用户、比赛结果、单场竞猜、赛季竞猜）持有一个独立的UUID，
// 写路径提交后调用Bump换发新的UUID；缓存条目记录自己依赖哪些类，
// 通过比较UUID向量判断是否过期。这取代了手工维护的失效键名列表。

// Class 是一个位掩码，标识计算结果依赖的输入数据类。
type Class uint8

const (
	// Users 覆盖用户名单（启用/禁用、增删）。
	Users Class = 1 << iota
	// Results 覆盖正式比赛结果，是影响面最大的一类。
	Results
	// RaceGuesses 覆盖单场竞猜。
	RaceGuesses
	// SeasonGuesses 覆盖赛季竞猜及其人工判定结果。
	SeasonGuesses
)

// All 是四个依赖类的并集。
const All = Users | Results | RaceGuesses | SeasonGuesses

const classCount = 4

// Vector 是某一时刻四个依赖类的代号快照。
type Vector [classCount]string

// registry 持有当前的代号向量。
type registry struct {
	mu      sync.RWMutex
	current Vector
}

var globalRegistry = newRegistry()

func newRegistry() *registry {
	r := &registry{}
	for i := range r.current {
		r.current[i] = newID()
	}
	return r
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// uuid.NewV7只在系统熵源不可用时失败，此时无法继续提供一致性保证
		panic("无法生成generation ID: " + err.Error())
	}
	return id.String()
}

// Bump 为mask中包含的每个依赖类换发新的代号。
// 写路径必须在数据完全提交之后调用。
func Bump(mask Class) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	for i := 0; i < classCount; i++ {
		if mask&(1<<i) != 0 {
			globalRegistry.current[i] = newID()
		}
	}
}

// Current 返回当前的代号向量。
func Current() Vector {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return globalRegistry.current
}

// Stale 判断以recorded向量为基准、依赖mask中各类的计算结果是否已过期。
func Stale(mask Class, recorded Vector) bool {
	current := Current()
	for i := 0; i < classCount; i++ {
		if mask&(1<<i) != 0 && current[i] != recorded[i] {
			return true
		}
	}
	return false
}
