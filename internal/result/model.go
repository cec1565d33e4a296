package result

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// RaceResult 定义了正式比赛结果在SQLite数据库中的持久化模型。
// 有序的车手名单以JSON形式存储在文本列中。
// 结果一经录入不再被修改，重新录入视为一次全新的覆盖写。
type RaceResult struct {
	gorm.Model

	// RaceNumber 是对应分站的赛季序号，一个分站至多一条结果
	RaceNumber int `gorm:"uniqueIndex;not null"`

	// OrderJSON 是完整完赛顺序，下标0为P1，长度等于发车名额数
	OrderJSON string `gorm:"not null"`

	// FirstDNFJSON 是"首个退赛"名单，按退赛先后排序；可以为空数组
	FirstDNFJSON string `gorm:"not null"`

	// AllDNFJSON 是全部退赛车手，必须是FirstDNFJSON的超集
	AllDNFJSON string `gorm:"not null"`

	// ExcludedJSON 是被除名的车手，必须占据完赛顺序的连续末尾区段
	ExcludedJSON string `gorm:"not null"`

	// FastestLap 是做出最快圈速的车手
	FastestLap string `gorm:"not null"`

	// SprintOrderJSON / SprintDNFJSON 是冲刺赛子结果，仅冲刺周末存在
	SprintOrderJSON string
	SprintDNFJSON   string
}

// --- 领域值对象 ---

// SprintResult 持有冲刺赛的子结果。
type SprintResult struct {
	Order []string
	DNF   []string
}

// Result 是一场比赛结果的不可变领域视图。
// 所有派生字段在构造时填充完毕，之后只读。
type Result struct {
	RaceNumber int
	Order      []string // 下标0为P1
	FirstDNF   []string // 按退赛先后排序
	AllDNF     []string
	Excluded   []string
	FastestLap string
	Sprint     *SprintResult

	excludedSet map[string]bool
}

// newResult 从持久化模型构造领域视图。
func newResult(dbResult RaceResult) (Result, error) {
	result := Result{
		RaceNumber: dbResult.RaceNumber,
		FastestLap: dbResult.FastestLap,
	}

	if err := json.Unmarshal([]byte(dbResult.OrderJSON), &result.Order); err != nil {
		return Result{}, fmt.Errorf("分站 %d 的完赛顺序无法解析: %w", dbResult.RaceNumber, err)
	}
	if err := json.Unmarshal([]byte(dbResult.FirstDNFJSON), &result.FirstDNF); err != nil {
		return Result{}, fmt.Errorf("分站 %d 的首退名单无法解析: %w", dbResult.RaceNumber, err)
	}
	if err := json.Unmarshal([]byte(dbResult.AllDNFJSON), &result.AllDNF); err != nil {
		return Result{}, fmt.Errorf("分站 %d 的退赛名单无法解析: %w", dbResult.RaceNumber, err)
	}
	if err := json.Unmarshal([]byte(dbResult.ExcludedJSON), &result.Excluded); err != nil {
		return Result{}, fmt.Errorf("分站 %d 的除名名单无法解析: %w", dbResult.RaceNumber, err)
	}
	if dbResult.SprintOrderJSON != "" {
		sprint := &SprintResult{}
		if err := json.Unmarshal([]byte(dbResult.SprintOrderJSON), &sprint.Order); err != nil {
			return Result{}, fmt.Errorf("分站 %d 的冲刺赛顺序无法解析: %w", dbResult.RaceNumber, err)
		}
		if dbResult.SprintDNFJSON != "" {
			if err := json.Unmarshal([]byte(dbResult.SprintDNFJSON), &sprint.DNF); err != nil {
				return Result{}, fmt.Errorf("分站 %d 的冲刺赛退赛名单无法解析: %w", dbResult.RaceNumber, err)
			}
		}
		result.Sprint = sprint
	}

	result.excludedSet = make(map[string]bool, len(result.Excluded))
	for _, driver := range result.Excluded {
		result.excludedSet[driver] = true
	}
	return result, nil
}

// New 直接从各组成部分构造领域视图。
// 调用方负责保证数据已经通过写路径的形状校验。
func New(raceNumber int, order, firstDNF, allDNF, excluded []string, fastestLap string, sprint *SprintResult) Result {
	result := Result{
		RaceNumber: raceNumber,
		Order:      order,
		FirstDNF:   firstDNF,
		AllDNF:     allDNF,
		Excluded:   excluded,
		FastestLap: fastestLap,
		Sprint:     sprint,
	}
	result.excludedSet = make(map[string]bool, len(excluded))
	for _, driver := range excluded {
		result.excludedSet[driver] = true
	}
	return result
}

// IsExcluded 判断车手在本场是否被除名。
func (r Result) IsExcluded(driver string) bool {
	return r.excludedSet[driver]
}

// PositionOf 返回车手的实际完赛名次（P1为1）。
// 车手不在结果中、或占据被除名的末尾名次时返回false。
func (r Result) PositionOf(driver string) (int, bool) {
	if driver == "" {
		return 0, false
	}
	for i, name := range r.Order {
		if name == driver {
			if r.excludedSet[name] {
				return 0, false
			}
			return i + 1, true
		}
	}
	return 0, false
}

// DriverAt 返回指定名次上的车手（P1为1）。名次越界返回false。
func (r Result) DriverAt(position int) (string, bool) {
	if position < 1 || position > len(r.Order) {
		return "", false
	}
	return r.Order[position-1], true
}

// HasFirstDNF 判断车手是否在首退名单中。
func (r Result) HasFirstDNF(driver string) bool {
	for _, name := range r.FirstDNF {
		if name == driver {
			return true
		}
	}
	return false
}
