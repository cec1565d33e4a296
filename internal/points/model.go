package points

import (
	"fmt"

	"github.com/SlpAus/formula10-league-backend/internal/catalog"
	"github.com/SlpAus/formula10-league-backend/internal/guess"
	"github.com/SlpAus/formula10-league-backend/internal/result"
	"github.com/SlpAus/formula10-league-backend/pkg/lookup"
)

// 三个模型都是一次性算好的不可变快照：构造完成后只读，
// 可以被任意多个请求并发访问。过期判定交给cache.go的generation向量。

// --- 玩家积分模型 ---

// RaceModel 持有全部启用玩家的单场竞猜积分。
type RaceModel struct {
	// Series 按玩家名映射到按分站序号索引的积分序列，下标0不使用
	Series map[string][]int
	// Totals 是每名玩家的单场竞猜总分
	Totals map[string]int
	// Standings 是按单场竞猜总分的玩家排名
	Standings Standings
	// GuessCounts 是每名玩家提交过的单场竞猜数量
	GuessCounts map[string]int
	// PicksWithPoints 是每名玩家拿到过分数的竞猜项数量（名次和退赛分开计数）
	PicksWithPoints map[string]int
}

// newRaceModel 从内存数据构造玩家积分模型。
func newRaceModel(userNames []string, races []catalog.RaceInfo, results []result.Result, guesses map[int]map[string]guess.RaceGuessView) *RaceModel {
	seriesLength := 1
	for _, race := range races {
		if race.Number+1 > seriesLength {
			seriesLength = race.Number + 1
		}
	}

	raceByNumber := make(map[int]catalog.RaceInfo, len(races))
	for _, race := range races {
		raceByNumber[race.Number] = race
	}

	model := &RaceModel{
		Series:          make(map[string][]int, len(userNames)),
		Totals:          make(map[string]int, len(userNames)),
		GuessCounts:     make(map[string]int, len(userNames)),
		PicksWithPoints: make(map[string]int, len(userNames)),
	}
	for _, name := range userNames {
		model.Series[name] = make([]int, seriesLength)
	}

	for _, res := range results {
		race, ok := raceByNumber[res.RaceNumber]
		if !ok {
			continue
		}
		for userName, view := range guesses[res.RaceNumber] {
			series, ok := model.Series[userName]
			if !ok {
				continue
			}
			standing := positionPoints(view.PxxPick, res, race.PlaceToGuess)
			retirement := retirementPoints(view.DNFPick, res)
			series[res.RaceNumber] = standing + retirement
			if standing > 0 {
				model.PicksWithPoints[userName]++
			}
			if retirement > 0 {
				model.PicksWithPoints[userName]++
			}
		}
	}

	for _, byUser := range guesses {
		for userName := range byUser {
			if _, ok := model.Series[userName]; ok {
				model.GuessCounts[userName]++
			}
		}
	}

	for name, series := range model.Series {
		model.Totals[name] = seriesTotal(series)
	}
	model.Standings = rankTotals(model.Totals)

	return model
}

// buildRaceModel 从各存储读取当前数据并构造模型。
func buildRaceModel() (*RaceModel, error) {
	users, err := catalog.AllEnabledUsers()
	if err != nil {
		return nil, err
	}
	userNames := make([]string, 0, len(users))
	for _, user := range users {
		userNames = append(userNames, user.Name)
	}

	results, err := result.AllResults()
	if err != nil {
		return nil, err
	}
	guesses, err := guess.AllRaceGuessesGroupedByRaceThenUser()
	if err != nil {
		return nil, err
	}

	return newRaceModel(userNames, catalog.AllRaces(), results, guesses), nil
}

// SeriesFor 返回某玩家的积分序列。玩家不在榜中返回lookup.ErrNotFound。
func (m *RaceModel) SeriesFor(userName string) ([]int, error) {
	series, ok := m.Series[userName]
	if !ok {
		return nil, fmt.Errorf("玩家 %q: %w", userName, lookup.ErrNotFound)
	}
	return series, nil
}

// PointsFor 返回某玩家在某分站的得分。没有竞猜或没有结果的分站为0。
func (m *RaceModel) PointsFor(userName string, raceNumber int) (int, error) {
	series, err := m.SeriesFor(userName)
	if err != nil {
		return 0, err
	}
	if raceNumber < 1 || raceNumber >= len(series) {
		return 0, fmt.Errorf("分站序号 %d: %w", raceNumber, lookup.ErrNotFound)
	}
	return series[raceNumber], nil
}

// PointsPerPick 返回某玩家平均每个竞猜项拿到的分数。
// 每条单场竞猜包含名次、退赛两个独立计分项；没有竞猜时定义为0.0。
func (m *RaceModel) PointsPerPick(userName string) float64 {
	picks := m.GuessCounts[userName] * 2
	if picks == 0 {
		return 0.0
	}
	return float64(m.Totals[userName]) / float64(picks)
}

// --- 车手/车队积分模型 ---

// DriverModel 持有车手与车队的积分、排名和派生事实。
type DriverModel struct {
	// Drivers 是全名单（含已停用的替补/离队车手）
	Drivers []catalog.DriverInfo

	DriverSeries map[string][]int
	TeamSeries   map[string][]int
	DriverTotals map[string]int
	TeamTotals   map[string]int

	// DriverStandings 对应WDC，TeamStandings 对应WCC
	DriverStandings Standings
	TeamStandings   Standings

	// DNFCounts 是每名车手的退赛次数（含冲刺赛）
	DNFCounts map[string]int
	// StandingDiffs 是参考位次减当前位次，正数表示排名上升
	StandingDiffs map[string]int

	// MostDNFs / MostGained / MostLost 是并列取齐的极值集合
	MostDNFs   []string
	MostGained []string
	MostLost   []string

	// PodiumDrivers 记录赛季中至少登台过一次的车手
	PodiumDrivers map[string]bool
}

// newDriverModel 从内存数据构造车手/车队积分模型。
func newDriverModel(drivers []catalog.DriverInfo, teams []catalog.TeamInfo, races []catalog.RaceInfo, results []result.Result) *DriverModel {
	seriesLength := 1
	for _, race := range races {
		if race.Number+1 > seriesLength {
			seriesLength = race.Number + 1
		}
	}

	model := &DriverModel{
		Drivers:       drivers,
		DriverSeries:  make(map[string][]int, len(drivers)),
		TeamSeries:    make(map[string][]int, len(teams)),
		DriverTotals:  make(map[string]int, len(drivers)),
		TeamTotals:    make(map[string]int, len(teams)),
		DNFCounts:     make(map[string]int, len(drivers)),
		StandingDiffs: make(map[string]int, len(drivers)),
		PodiumDrivers: make(map[string]bool),
	}
	for _, driver := range drivers {
		model.DriverSeries[driver.Name] = make([]int, seriesLength)
	}
	for _, team := range teams {
		model.TeamSeries[team.Name] = make([]int, seriesLength)
	}

	corrections := make(map[string]map[int]int)
	for _, c := range standInCorrections {
		if corrections[c.DriverName] == nil {
			corrections[c.DriverName] = make(map[int]int)
		}
		corrections[c.DriverName][c.RaceNumber] += c.Points
	}

	for _, res := range results {
		if res.RaceNumber >= seriesLength {
			continue
		}
		for _, driver := range drivers {
			points := driverRacePoints(res, driver.Name)
			points -= corrections[driver.Name][res.RaceNumber]
			model.DriverSeries[driver.Name][res.RaceNumber] = points
		}

		for _, name := range res.AllDNF {
			model.DNFCounts[name]++
		}
		if res.Sprint != nil {
			for _, name := range res.Sprint.DNF {
				model.DNFCounts[name]++
			}
		}

		for position := 1; position <= 3; position++ {
			if name, ok := res.DriverAt(position); ok && !res.IsExcluded(name) {
				model.PodiumDrivers[name] = true
			}
		}
	}

	for _, driver := range drivers {
		series := model.DriverSeries[driver.Name]
		model.DriverTotals[driver.Name] = seriesTotal(series)
		if teamSeries, ok := model.TeamSeries[driver.TeamName]; ok {
			for i, points := range series {
				teamSeries[i] += points
			}
		}
	}
	for name, series := range model.TeamSeries {
		model.TeamTotals[name] = seriesTotal(series)
	}

	model.DriverStandings = rankTotals(model.DriverTotals)
	model.TeamStandings = rankTotals(model.TeamTotals)
	model.computeStandingDiffs()
	model.computeMostFacts()

	return model
}

// buildDriverModel 从各存储读取当前数据并构造模型。
func buildDriverModel() (*DriverModel, error) {
	results, err := result.AllResults()
	if err != nil {
		return nil, err
	}
	return newDriverModel(catalog.AllDrivers(true), catalog.AllTeams(), catalog.AllRaces(), results), nil
}

// computeStandingDiffs 计算每名车手相对参考赛季的位次变化。
func (m *DriverModel) computeStandingDiffs() {
	for _, driver := range m.Drivers {
		reference, ok := standingReference2023[driver.Name]
		if !ok {
			m.StandingDiffs[driver.Name] = 0
			continue
		}
		m.StandingDiffs[driver.Name] = reference - m.DriverStandings.PositionOf[driver.Name]
	}
}

// computeMostFacts 计算退赛最多、排名上升/下降最多的车手集合。
// 并列不做裁决，所有达到极值的车手都算命中。
func (m *DriverModel) computeMostFacts() {
	excludedFromGained := make(map[string]bool, len(wdcGainedExcludedAbbrs))
	for _, abbr := range wdcGainedExcludedAbbrs {
		excludedFromGained[abbr] = true
	}

	maxDNFs := 0
	for _, driver := range m.Drivers {
		if m.DNFCounts[driver.Name] > maxDNFs {
			maxDNFs = m.DNFCounts[driver.Name]
		}
	}

	firstGained, firstLost := true, true
	maxGained, minLost := 0, 0
	for _, driver := range m.Drivers {
		diff := m.StandingDiffs[driver.Name]
		if !excludedFromGained[driver.Abbr] {
			if firstGained || diff > maxGained {
				maxGained = diff
			}
			firstGained = false
		}
		if firstLost || diff < minLost {
			minLost = diff
		}
		firstLost = false
	}

	for _, driver := range m.Drivers {
		diff := m.StandingDiffs[driver.Name]
		if maxDNFs > 0 && m.DNFCounts[driver.Name] == maxDNFs {
			m.MostDNFs = append(m.MostDNFs, driver.Name)
		}
		if !excludedFromGained[driver.Abbr] && diff == maxGained {
			m.MostGained = append(m.MostGained, driver.Name)
		}
		if diff == minLost {
			m.MostLost = append(m.MostLost, driver.Name)
		}
	}
}

// IsTeamWinner 判断车手是否赢下了队内对决：
// 其WDC位次不差于现役队友的位次（同分并列时两人都算胜者）。
func (m *DriverModel) IsTeamWinner(driverName string) (bool, error) {
	driver, err := lookup.Single(m.Drivers, func(d catalog.DriverInfo) bool { return d.Name == driverName })
	if err != nil {
		return false, fmt.Errorf("车手 %q: %w", driverName, err)
	}

	// 停用车手（替补）可能面对两名现役队友，对决无法裁定
	teammate, ok, err := lookup.SingleOrNone(m.Drivers, func(d catalog.DriverInfo) bool {
		return d.TeamName == driver.TeamName && d.Active && d.Name != driverName
	})
	if err != nil {
		return false, fmt.Errorf("车手 %q 的队友: %w", driverName, err)
	}
	if !ok {
		return false, fmt.Errorf("车手 %q 没有现役队友: %w", driverName, lookup.ErrNotFound)
	}

	return m.DriverStandings.PositionOf[driverName] <= m.DriverStandings.PositionOf[teammate.Name], nil
}
