package guess

import (
	"fmt"

	"github.com/SlpAus/formula10-league-backend/internal/catalog"
	"github.com/SlpAus/formula10-league-backend/internal/platform/database"
)

// 每种查询形状都是一个独立的具名函数，返回固定的静态类型。
// （原型里的“按参数组合返回不同形状”的查询被有意拆开。）

// enabledUserSet 返回启用玩家名的集合，供聚合查询过滤。
func enabledUserSet() (map[string]bool, error) {
	users, err := catalog.AllEnabledUsers()
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(users))
	for _, user := range users {
		set[user.Name] = true
	}
	return set, nil
}

// AllRaceGuesses 返回启用玩家的全部单场竞猜。
func AllRaceGuesses() ([]RaceGuessView, error) {
	var dbGuesses []RaceGuess
	if err := database.DB.Find(&dbGuesses).Error; err != nil {
		return nil, fmt.Errorf("无法从SQLite加载单场竞猜: %w", err)
	}
	enabled, err := enabledUserSet()
	if err != nil {
		return nil, err
	}

	views := make([]RaceGuessView, 0, len(dbGuesses))
	for _, dbGuess := range dbGuesses {
		if enabled[dbGuess.UserName] {
			views = append(views, newRaceGuessView(dbGuess))
		}
	}
	return views, nil
}

// RaceGuessesForUser 返回某玩家的全部单场竞猜。
func RaceGuessesForUser(userName string) ([]RaceGuessView, error) {
	var dbGuesses []RaceGuess
	if err := database.DB.Where("user_name = ?", userName).Order("race_number asc").Find(&dbGuesses).Error; err != nil {
		return nil, fmt.Errorf("无法加载玩家 %q 的单场竞猜: %w", userName, err)
	}
	views := make([]RaceGuessView, 0, len(dbGuesses))
	for _, dbGuess := range dbGuesses {
		views = append(views, newRaceGuessView(dbGuess))
	}
	return views, nil
}

// RaceGuessesForRace 返回启用玩家对某分站的全部竞猜。
func RaceGuessesForRace(raceNumber int) ([]RaceGuessView, error) {
	var dbGuesses []RaceGuess
	if err := database.DB.Where("race_number = ?", raceNumber).Find(&dbGuesses).Error; err != nil {
		return nil, fmt.Errorf("无法加载分站 %d 的竞猜: %w", raceNumber, err)
	}
	enabled, err := enabledUserSet()
	if err != nil {
		return nil, err
	}
	views := make([]RaceGuessView, 0, len(dbGuesses))
	for _, dbGuess := range dbGuesses {
		if enabled[dbGuess.UserName] {
			views = append(views, newRaceGuessView(dbGuess))
		}
	}
	return views, nil
}

// RaceGuessForUserAndRace 返回某玩家对某分站的竞猜。不存在时第二个返回值为false。
func RaceGuessForUserAndRace(userName string, raceNumber int) (RaceGuessView, bool, error) {
	var dbGuesses []RaceGuess
	if err := database.DB.Where("user_name = ? AND race_number = ?", userName, raceNumber).Limit(1).Find(&dbGuesses).Error; err != nil {
		return RaceGuessView{}, false, fmt.Errorf("无法加载玩家 %q 对分站 %d 的竞猜: %w", userName, raceNumber, err)
	}
	if len(dbGuesses) == 0 {
		return RaceGuessView{}, false, nil
	}
	return newRaceGuessView(dbGuesses[0]), true, nil
}

// AllRaceGuessesGroupedByRaceThenUser 返回分站序号 -> 玩家名 -> 竞猜的两级映射。
func AllRaceGuessesGroupedByRaceThenUser() (map[int]map[string]RaceGuessView, error) {
	views, err := AllRaceGuesses()
	if err != nil {
		return nil, err
	}
	grouped := make(map[int]map[string]RaceGuessView)
	for _, view := range views {
		byUser, ok := grouped[view.RaceNumber]
		if !ok {
			byUser = make(map[string]RaceGuessView)
			grouped[view.RaceNumber] = byUser
		}
		byUser[view.UserName] = view
	}
	return grouped, nil
}

// AllSeasonGuesses 返回启用玩家的全部赛季竞猜。
func AllSeasonGuesses() ([]SeasonGuessView, error) {
	var dbGuesses []SeasonGuess
	if err := database.DB.Find(&dbGuesses).Error; err != nil {
		return nil, fmt.Errorf("无法从SQLite加载赛季竞猜: %w", err)
	}
	enabled, err := enabledUserSet()
	if err != nil {
		return nil, err
	}

	views := make([]SeasonGuessView, 0, len(dbGuesses))
	for _, dbGuess := range dbGuesses {
		if !enabled[dbGuess.UserName] {
			continue
		}
		view, err := newSeasonGuessView(dbGuess)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// SeasonGuessForUser 返回某玩家的赛季竞猜。不存在时第二个返回值为false。
func SeasonGuessForUser(userName string) (SeasonGuessView, bool, error) {
	var dbGuesses []SeasonGuess
	if err := database.DB.Where("user_name = ?", userName).Limit(1).Find(&dbGuesses).Error; err != nil {
		return SeasonGuessView{}, false, fmt.Errorf("无法加载玩家 %q 的赛季竞猜: %w", userName, err)
	}
	if len(dbGuesses) == 0 {
		return SeasonGuessView{}, false, nil
	}
	view, err := newSeasonGuessView(dbGuesses[0])
	if err != nil {
		return SeasonGuessView{}, false, err
	}
	return view, true, nil
}

// AllSeasonGuessResults 返回启用玩家的全部人工判定结果。
func AllSeasonGuessResults() ([]SeasonGuessResultView, error) {
	var dbResults []SeasonGuessResult
	if err := database.DB.Find(&dbResults).Error; err != nil {
		return nil, fmt.Errorf("无法从SQLite加载赛季竞猜判定: %w", err)
	}
	enabled, err := enabledUserSet()
	if err != nil {
		return nil, err
	}

	views := make([]SeasonGuessResultView, 0, len(dbResults))
	for _, dbResult := range dbResults {
		if enabled[dbResult.UserName] {
			views = append(views, SeasonGuessResultView{
				UserName:         dbResult.UserName,
				HotTakeCorrect:   dbResult.HotTakeCorrect,
				OvertakesCorrect: dbResult.OvertakesCorrect,
			})
		}
	}
	return views, nil
}
