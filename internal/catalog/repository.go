package catalog

import (
	"fmt"
	"sort"
	"time"

	"github.com/SlpAus/formula10-league-backend/internal/platform/database"
	"github.com/SlpAus/formula10-league-backend/pkg/lookup"
)

// --- In-memory Repository ---

// DriverInfo 持有车手的静态数据，在程序启动时加载到内存中
type DriverInfo struct {
	Name        string
	Abbr        string
	CountryCode string
	TeamName    string
	Active      bool
}

// TeamInfo 持有车队的静态数据
type TeamInfo struct {
	Name string
}

// RaceInfo 持有分站的静态数据
type RaceInfo struct {
	Number       int
	Name         string
	Date         time.Time
	PlaceToGuess int
	HasSprint    bool
}

// HasStarted 判断分站在参考时间点是否已经开始。
func (r RaceInfo) HasStarted(now time.Time) bool {
	return now.After(r.Date)
}

// repository 是catalog模块的中央数据仓库。
// 车手/车队/分站是赛季内只读的参照数据，启动时一次性加载；
// 用户是可变的，始终直接查询SQLite。
type repository struct {
	drivers []DriverInfo
	teams   []TeamInfo
	races   []RaceInfo // 按Number升序
}

// globalRepository 是我们仓库的私有单例实例
var globalRepository *repository

// InitializeRepository 从SQLite加载静态参照数据，初始化内存仓库。
// 这个函数应该在应用启动时且仅调用一次。
func InitializeRepository() error {
	var driversFromDB []Driver
	if err := database.DB.Order("name asc").Find(&driversFromDB).Error; err != nil {
		return fmt.Errorf("无法从SQLite加载车手静态数据: %w", err)
	}
	var teamsFromDB []Team
	if err := database.DB.Order("name asc").Find(&teamsFromDB).Error; err != nil {
		return fmt.Errorf("无法从SQLite加载车队静态数据: %w", err)
	}
	var racesFromDB []Race
	if err := database.DB.Order("number asc").Find(&racesFromDB).Error; err != nil {
		return fmt.Errorf("无法从SQLite加载分站静态数据: %w", err)
	}

	if len(racesFromDB) == 0 {
		return fmt.Errorf("分站静态数据为空，无法初始化仓库")
	}

	repo := &repository{
		drivers: make([]DriverInfo, 0, len(driversFromDB)),
		teams:   make([]TeamInfo, 0, len(teamsFromDB)),
		races:   make([]RaceInfo, 0, len(racesFromDB)),
	}
	for _, d := range driversFromDB {
		repo.drivers = append(repo.drivers, DriverInfo{
			Name:        d.Name,
			Abbr:        d.Abbr,
			CountryCode: d.CountryCode,
			TeamName:    d.TeamName,
			Active:      d.Active,
		})
	}
	for _, t := range teamsFromDB {
		repo.teams = append(repo.teams, TeamInfo{Name: t.Name})
	}
	for _, r := range racesFromDB {
		repo.races = append(repo.races, RaceInfo{
			Number:       r.Number,
			Name:         r.Name,
			Date:         r.Date,
			PlaceToGuess: r.PlaceToGuess,
			HasSprint:    r.HasSprint,
		})
	}
	sort.Slice(repo.races, func(i, j int) bool { return repo.races[i].Number < repo.races[j].Number })

	globalRepository = repo
	fmt.Printf("参照数据仓库初始化成功，加载了 %d 名车手 / %d 支车队 / %d 个分站。\n",
		len(repo.drivers), len(repo.teams), len(repo.races))
	return nil
}

// --- Public Methods for Data Access ---
// 这些方法是线程安全的，因为它们访问的是启动后只读的数据。

// AllDrivers 返回全部车手。includeInactive为false时过滤掉停用车手。
func AllDrivers(includeInactive bool) []DriverInfo {
	if globalRepository == nil {
		return nil
	}
	if includeInactive {
		return append([]DriverInfo(nil), globalRepository.drivers...)
	}
	return lookup.Filter(globalRepository.drivers, func(d DriverInfo) bool { return d.Active })
}

// AllTeams 返回全部车队。
func AllTeams() []TeamInfo {
	if globalRepository == nil {
		return nil
	}
	return append([]TeamInfo(nil), globalRepository.teams...)
}

// AllRaces 返回全部分站，按赛季序号升序。
func AllRaces() []RaceInfo {
	if globalRepository == nil {
		return nil
	}
	return append([]RaceInfo(nil), globalRepository.races...)
}

// AllRacesDescending 返回全部分站，按赛季序号降序（最近的分站在前）。
func AllRacesDescending() []RaceInfo {
	races := AllRaces()
	sort.Slice(races, func(i, j int) bool { return races[i].Number > races[j].Number })
	return races
}

// LastRaceNumber 返回赛季最后一个分站的序号。
func LastRaceNumber() int {
	if globalRepository == nil || len(globalRepository.races) == 0 {
		return 0
	}
	return globalRepository.races[len(globalRepository.races)-1].Number
}

// DriverByName 按全名查找车手。找不到返回lookup.ErrNotFound。
func DriverByName(name string) (DriverInfo, error) {
	if globalRepository == nil {
		return DriverInfo{}, fmt.Errorf("参照数据仓库未初始化")
	}
	driver, err := lookup.Single(globalRepository.drivers, func(d DriverInfo) bool { return d.Name == name })
	if err != nil {
		return DriverInfo{}, fmt.Errorf("车手 %q: %w", name, err)
	}
	return driver, nil
}

// DriverByAbbr 按三字母缩写查找车手。
func DriverByAbbr(abbr string) (DriverInfo, error) {
	if globalRepository == nil {
		return DriverInfo{}, fmt.Errorf("参照数据仓库未初始化")
	}
	driver, err := lookup.Single(globalRepository.drivers, func(d DriverInfo) bool { return d.Abbr == abbr })
	if err != nil {
		return DriverInfo{}, fmt.Errorf("车手缩写 %q: %w", abbr, err)
	}
	return driver, nil
}

// TeamByName 按名称查找车队。
func TeamByName(name string) (TeamInfo, error) {
	if globalRepository == nil {
		return TeamInfo{}, fmt.Errorf("参照数据仓库未初始化")
	}
	team, err := lookup.Single(globalRepository.teams, func(t TeamInfo) bool { return t.Name == name })
	if err != nil {
		return TeamInfo{}, fmt.Errorf("车队 %q: %w", name, err)
	}
	return team, nil
}

// RaceByNumber 按赛季序号查找分站。
func RaceByNumber(number int) (RaceInfo, error) {
	if globalRepository == nil {
		return RaceInfo{}, fmt.Errorf("参照数据仓库未初始化")
	}
	race, err := lookup.Single(globalRepository.races, func(r RaceInfo) bool { return r.Number == number })
	if err != nil {
		return RaceInfo{}, fmt.Errorf("分站序号 %d: %w", number, err)
	}
	return race, nil
}

// RaceByName 按名称查找分站。
func RaceByName(name string) (RaceInfo, error) {
	if globalRepository == nil {
		return RaceInfo{}, fmt.Errorf("参照数据仓库未初始化")
	}
	race, err := lookup.Single(globalRepository.races, func(r RaceInfo) bool { return r.Name == name })
	if err != nil {
		return RaceInfo{}, fmt.Errorf("分站 %q: %w", name, err)
	}
	return race, nil
}

// FirstRace 返回赛季的第一个分站。赛季竞猜的锁定以它的开始时间为准。
func FirstRace() (RaceInfo, error) {
	if globalRepository == nil || len(globalRepository.races) == 0 {
		return RaceInfo{}, fmt.Errorf("参照数据仓库未初始化")
	}
	return globalRepository.races[0], nil
}

// DriversForTeam 返回某支车队的车手。
// 包含停用车手时要求至少两人，只看现役时要求恰好两人（队友恒等式的前提）。
func DriversForTeam(teamName string, includeInactive bool) ([]DriverInfo, error) {
	if globalRepository == nil {
		return nil, fmt.Errorf("参照数据仓库未初始化")
	}
	predicate := func(d DriverInfo) bool { return d.TeamName == teamName }
	if includeInactive {
		drivers := lookup.Filter(globalRepository.drivers, predicate)
		if len(drivers) < 2 {
			return nil, fmt.Errorf("车队 %q 车手数量异常: %w", teamName, lookup.ErrCardinality)
		}
		return drivers, nil
	}
	drivers, err := lookup.FilterExactly(globalRepository.drivers, func(d DriverInfo) bool {
		return predicate(d) && d.Active
	}, 2)
	if err != nil {
		return nil, fmt.Errorf("车队 %q: %w", teamName, err)
	}
	return drivers, nil
}

// --- User queries (SQLite, mutable) ---

// AllEnabledUsers 返回全部启用的玩家。
func AllEnabledUsers() ([]User, error) {
	var users []User
	if err := database.DB.Where("enabled = ?", true).Order("name asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("无法从SQLite加载玩家列表: %w", err)
	}
	return users, nil
}

// UserByName 按名称查找玩家（无论是否启用）。
// 找不到时返回lookup.ErrNotFound，调用方可以据此区分数据完整性问题。
func UserByName(name string) (User, error) {
	var users []User
	if err := database.DB.Where("name = ?", name).Limit(2).Find(&users).Error; err != nil {
		return User{}, fmt.Errorf("无法查询玩家 %q: %w", name, err)
	}
	user, err := lookup.Single(users, func(User) bool { return true })
	if err != nil {
		return User{}, fmt.Errorf("玩家 %q: %w", name, err)
	}
	return user, nil
}
