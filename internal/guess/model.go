package guess

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// --- 可空选择 ---

// Pick 表示一个可以为空的名称选择（车手或车队）。
// 它取代“魔法NONE实体”：空选择是显式的带标签变体，
// 不会作为普通实体混入相等性比较或集合运算。
type Pick struct {
	name  string
	valid bool
}

// PickOf 构造一个指向name的选择。
func PickOf(name string) Pick {
	return Pick{name: name, valid: true}
}

// NoPick 构造一个空选择。
// 在退赛竞猜中它的含义是“预测本场无人退赛”。
func NoPick() Pick {
	return Pick{}
}

// Name 返回所选名称。空选择返回false。
func (p Pick) Name() (string, bool) {
	return p.name, p.valid
}

// IsNone 判断是否为空选择。
func (p Pick) IsNone() bool {
	return !p.valid
}

// pickFromColumn 从可空的数据库列还原选择。
func pickFromColumn(column *string) Pick {
	if column == nil || *column == "" {
		return NoPick()
	}
	return PickOf(*column)
}

// --- 持久化模型 ---

// RaceGuess 定义了单场竞猜在SQLite数据库中的持久化模型。
// (UserName, RaceNumber) 是业务上的复合主键。
// 对应分站的正式结果发布后，这条记录即被冻结。
type RaceGuess struct {
	gorm.Model

	UserName   string `gorm:"uniqueIndex:idx_race_guess_user_race;not null"`
	RaceNumber int    `gorm:"uniqueIndex:idx_race_guess_user_race;not null"`

	// PxxDriver 是对本站place-to-guess名次的车手竞猜
	PxxDriver string `gorm:"not null"`

	// DNFDriver 是对本站首个退赛车手的竞猜，空串表示预测无人退赛
	DNFDriver string
}

// SeasonGuess 定义了赛季竞猜在SQLite数据库中的持久化模型。
// 每名玩家至多一条，赛季首场比赛开始后冻结。
type SeasonGuess struct {
	gorm.Model

	UserName string `gorm:"uniqueIndex;not null"`

	// HotTake 是自由文本的大胆预言，正确性由人工判定
	HotTake *string

	// P2Team 是对车队积分榜第二名的竞猜
	P2Team *string

	// MostOvertakes 超车最多的车手，正确性由人工判定
	MostOvertakes *string

	// MostDNFs 退赛次数最多的车手
	MostDNFs *string `gorm:"column:most_dnfs"`

	// MostGained 相对上赛季排名上升最多的车手
	MostGained *string

	// MostLost 相对上赛季排名下降最多的车手
	MostLost *string

	// TeamWinnersJSON 是车队名到车手名的映射：预测每支车队内得分更高的一方
	TeamWinnersJSON string `gorm:"not null;default:'{}'"`

	// PodiumsJSON 是预测本赛季至少登台一次的车手名单
	PodiumsJSON string `gorm:"not null;default:'[]'"`
}

// SeasonGuessResult 定义了无法由比赛结果推导的两项竞猜的人工判定结果。
type SeasonGuessResult struct {
	gorm.Model

	UserName string `gorm:"uniqueIndex;not null"`

	// HotTakeCorrect 是官方对大胆预言的判定
	HotTakeCorrect bool

	// OvertakesCorrect 是官方对超车竞猜的判定
	OvertakesCorrect bool
}

// --- 领域视图 ---

// RaceGuessView 是一条单场竞猜的只读领域视图。
type RaceGuessView struct {
	UserName   string
	RaceNumber int
	PxxPick    string
	DNFPick    Pick
}

// SeasonGuessView 是一条赛季竞猜的只读领域视图。
type SeasonGuessView struct {
	UserName      string
	HotTake       *string
	P2Team        Pick
	MostOvertakes Pick
	MostDNFs      Pick
	MostGained    Pick
	MostLost      Pick

	// TeamWinners 按车队名映射到预测胜出的车手名
	TeamWinners map[string]string

	// Podiums 是预测登台的车手名单
	Podiums []string
}

// SeasonGuessResultView 是一条人工判定结果的只读领域视图。
type SeasonGuessResultView struct {
	UserName         string
	HotTakeCorrect   bool
	OvertakesCorrect bool
}

func newRaceGuessView(dbGuess RaceGuess) RaceGuessView {
	view := RaceGuessView{
		UserName:   dbGuess.UserName,
		RaceNumber: dbGuess.RaceNumber,
		PxxPick:    dbGuess.PxxDriver,
		DNFPick:    NoPick(),
	}
	if dbGuess.DNFDriver != "" {
		view.DNFPick = PickOf(dbGuess.DNFDriver)
	}
	return view
}

func newSeasonGuessView(dbGuess SeasonGuess) (SeasonGuessView, error) {
	view := SeasonGuessView{
		UserName:      dbGuess.UserName,
		HotTake:       dbGuess.HotTake,
		P2Team:        pickFromColumn(dbGuess.P2Team),
		MostOvertakes: pickFromColumn(dbGuess.MostOvertakes),
		MostDNFs:      pickFromColumn(dbGuess.MostDNFs),
		MostGained:    pickFromColumn(dbGuess.MostGained),
		MostLost:      pickFromColumn(dbGuess.MostLost),
	}
	if err := json.Unmarshal([]byte(dbGuess.TeamWinnersJSON), &view.TeamWinners); err != nil {
		return SeasonGuessView{}, fmt.Errorf("玩家 %q 的队内胜者竞猜无法解析: %w", dbGuess.UserName, err)
	}
	if err := json.Unmarshal([]byte(dbGuess.PodiumsJSON), &view.Podiums); err != nil {
		return SeasonGuessView{}, fmt.Errorf("玩家 %q 的登台竞猜无法解析: %w", dbGuess.UserName, err)
	}
	return view, nil
}
