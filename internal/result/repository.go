package result

import (
	"fmt"

	"github.com/SlpAus/formula10-league-backend/internal/catalog"
	"github.com/SlpAus/formula10-league-backend/internal/platform/database"
)

// AllResults 返回全部已录入的结果，按赛季序号降序（最近的在前）。
func AllResults() ([]Result, error) {
	var dbResults []RaceResult
	if err := database.DB.Order("race_number desc").Find(&dbResults).Error; err != nil {
		return nil, fmt.Errorf("无法从SQLite加载比赛结果: %w", err)
	}
	results := make([]Result, 0, len(dbResults))
	for _, dbResult := range dbResults {
		result, err := newResult(dbResult)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// ResultForRace 返回指定分站的结果。结果不存在时第二个返回值为false。
func ResultForRace(raceNumber int) (Result, bool, error) {
	var dbResults []RaceResult
	if err := database.DB.Where("race_number = ?", raceNumber).Limit(1).Find(&dbResults).Error; err != nil {
		return Result{}, false, fmt.Errorf("无法查询分站 %d 的结果: %w", raceNumber, err)
	}
	if len(dbResults) == 0 {
		return Result{}, false, nil
	}
	result, err := newResult(dbResults[0])
	if err != nil {
		return Result{}, false, err
	}
	return result, true, nil
}

// HasResult 判断指定分站是否已有正式结果。
func HasResult(raceNumber int) (bool, error) {
	var count int64
	if err := database.DB.Model(&RaceResult{}).Where("race_number = ?", raceNumber).Count(&count).Error; err != nil {
		return false, fmt.Errorf("无法查询分站 %d 的结果: %w", raceNumber, err)
	}
	return count > 0, nil
}

// FirstRaceWithoutResult 返回第一个还没有正式结果的分站（“当前分站”）。
// 赛季已全部结束时第二个返回值为false。
func FirstRaceWithoutResult() (catalog.RaceInfo, bool, error) {
	results, err := AllResults()
	if err != nil {
		return catalog.RaceInfo{}, false, err
	}

	if len(results) == 0 {
		race, err := catalog.FirstRace()
		if err != nil {
			return catalog.RaceInfo{}, false, err
		}
		return race, true, nil
	}

	// AllResults按序号降序，首个元素即最近一场
	mostRecent := results[0].RaceNumber
	if mostRecent >= catalog.LastRaceNumber() {
		return catalog.RaceInfo{}, false, nil
	}
	race, err := catalog.RaceByNumber(mostRecent + 1)
	if err != nil {
		return catalog.RaceInfo{}, false, err
	}
	return race, true, nil
}
