package points

import (
	"sort"

	"github.com/SlpAus/formula10-league-backend/internal/guess"
	"github.com/SlpAus/formula10-league-backend/internal/result"
)

// --- 计分常量 ---

// raceGuessOffsetPoints 把名次竞猜的偏差映射为得分，偏差超过3不得分。
var raceGuessOffsetPoints = map[int]int{
	0: 10,
	1: 6,
	2: 3,
	3: 1,
}

// raceGuessDNFPoints 是猜中首个退赛车手（或猜中无人退赛）的得分。
const raceGuessDNFPoints = 10

// 赛季竞猜的六个大项每猜中一项得10分。
const seasonGuessPickPoints = 10

// 队内胜者：猜对+3，猜错-3。
const (
	seasonGuessTeamWinnerCorrectPoints = 3
	seasonGuessTeamWinnerFalsePoints   = -3
)

// 登台名单：猜中+3，误报-2，漏报同样-2。
const (
	seasonGuessPodiumCorrectPoints = 3
	seasonGuessPodiumFalsePoints   = -2
)

// racePointsScale 是正赛前十名的车手积分，下标0对应P1。
var racePointsScale = [...]int{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}

// sprintPointsScale 是冲刺赛前八名的车手积分，下标0对应P1。
var sprintPointsScale = [...]int{8, 7, 6, 5, 4, 3, 2, 1}

// fastestLapBonus 是最快圈速的加分，仅当车手进入正赛前十时生效。
const fastestLapBonus = 1

// standingReference2023 是上赛季（2023）车手积分榜的参考位次，
// 用于计算"排名上升/下降最多"。不在表中的车手视为位次没有变化。
var standingReference2023 = map[string]int{
	"Max Verstappen":   1,
	"Sergio Perez":     2,
	"Lewis Hamilton":   3,
	"Fernando Alonso":  4,
	"Charles Leclerc":  5,
	"Lando Norris":     6,
	"Carlos Sainz":     7,
	"George Russel":    8,
	"Oscar Piastri":    9,
	"Lance Stroll":     10,
	"Pierre Gasly":     11,
	"Esteban Ocon":     12,
	"Alexander Albon":  13,
	"Yuki Tsunoda":     14,
	"Valtteri Bottas":  15,
	"Nico Hulkenberg":  16,
	"Daniel Ricciardo": 17,
	"Zhou Guanyu":      18,
	"Kevin Magnussen":  19,
	"Logan Sargeant":   21,
}

// wdcGainedExcludedAbbrs 列出不参与"排名上升最多"评定的车手缩写。
// RIC在2023赛季缺席了多站，参与比较对其他人不公平，这是手工维护的调整项。
var wdcGainedExcludedAbbrs = []string{"RIC"}

// StandInCorrection 描述一条替补车手的积分修正：
// 结果录入时替补车手的名次被记在正选车手名下，需要在对应分站扣回。
type StandInCorrection struct {
	DriverName string
	RaceNumber int
	Points     int
}

// 2024第2站（沙特）Bearman替Sainz出赛拿到P7，6分不应计入Sainz名下。
var standInCorrections = []StandInCorrection{
	{DriverName: "Carlos Sainz", RaceNumber: 2, Points: 6},
}

// --- 单场竞猜计分 ---

// positionPoints 计算一条名次竞猜的得分。
// 被猜车手不在结果中、或占据被除名的末尾名次时得0分。
func positionPoints(pxxPick string, res result.Result, placeToGuess int) int {
	position, ok := res.PositionOf(pxxPick)
	if !ok {
		return 0
	}

	offset := position - placeToGuess
	if offset < 0 {
		offset = -offset
	}
	return raceGuessOffsetPoints[offset]
}

// retirementPoints 计算一条退赛竞猜的得分。
// 猜中首退名单中的任何一人得满分；竞猜"无人退赛"且首退名单为空同样得满分。
func retirementPoints(dnfPick guess.Pick, res result.Result) int {
	if name, ok := dnfPick.Name(); ok {
		if res.HasFirstDNF(name) {
			return raceGuessDNFPoints
		}
		return 0
	}
	if len(res.FirstDNF) == 0 {
		return raceGuessDNFPoints
	}
	return 0
}

// --- 车手积分 ---

// driverRacePoints 计算车手在一场比赛中的积分：
// 正赛名次积分 + 冲刺赛名次积分 + 最快圈速加分。替补修正由调用方叠加。
func driverRacePoints(res result.Result, driverName string) int {
	points := 0

	position, finished := res.PositionOf(driverName)
	if finished && position <= len(racePointsScale) {
		points += racePointsScale[position-1]
	}
	if res.FastestLap == driverName && finished && position <= 10 {
		points += fastestLapBonus
	}

	if res.Sprint != nil {
		for i, name := range res.Sprint.Order {
			if name == driverName {
				if i < len(sprintPointsScale) {
					points += sprintPointsScale[i]
				}
				break
			}
		}
	}

	return points
}

// --- 积分序列 ---

// cumulative 把按分站索引的积分序列转换为累计序列。
// 下标0保持为0，表示赛季开始前的状态。
func cumulative(series []int) []int {
	sums := make([]int, len(series))
	running := 0
	for i := 1; i < len(series); i++ {
		running += series[i]
		sums[i] = running
	}
	return sums
}

// seriesTotal 返回积分序列的总和。
func seriesTotal(series []int) int {
	total := 0
	for _, points := range series {
		total += points
	}
	return total
}

// --- 排名 ---

// Standings 是一张排名表的双向视图。
// 同分者共享同一位次，下一个不同分者的位次跳过所有同分者。
type Standings struct {
	// ByPosition 按位次列出成员，同分成员按名称排序
	ByPosition map[int][]string
	// PositionOf 按成员名给出位次
	PositionOf map[string]int
}

// rankTotals 按总分降序生成共享位次的排名表。
// 三人并列第2时都是第2，下一人是第5。
func rankTotals(totals map[string]int) Standings {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})

	standings := Standings{
		ByPosition: make(map[int][]string),
		PositionOf: make(map[string]int, len(names)),
	}

	position := 1
	placedAtPosition := 0
	lastPoints := 0
	for i, name := range names {
		if i == 0 {
			lastPoints = totals[name]
		} else if totals[name] < lastPoints {
			position += placedAtPosition
			placedAtPosition = 0
			lastPoints = totals[name]
		}
		placedAtPosition++
		standings.ByPosition[position] = append(standings.ByPosition[position], name)
		standings.PositionOf[name] = position
	}

	return standings
}
