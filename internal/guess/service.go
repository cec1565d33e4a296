package guess

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/formula10-league-backend/internal/catalog"
	"github.com/SlpAus/formula10-league-backend/internal/platform/config"
	"github.com/SlpAus/formula10-league-backend/internal/platform/database"
	"github.com/SlpAus/formula10-league-backend/internal/platform/generation"
	"github.com/SlpAus/formula10-league-backend/internal/result"
	"gorm.io/gorm/clause"
)

// ErrGuessLocked 表示竞猜窗口已经关闭。
var ErrGuessLocked = errors.New("guess: guessing window is closed")

// raceGuessLockError 判定单场竞猜在参考时间点是否被冻结。
// 结果发布后无条件冻结；时间锁启用时比赛开始后也冻结。
func raceGuessLockError(race catalog.RaceInfo, resultPublished, timingEnabled bool, now time.Time) error {
	if resultPublished {
		return fmt.Errorf("分站 %d 已有正式结果: %w", race.Number, ErrGuessLocked)
	}
	if timingEnabled && race.HasStarted(now) {
		return fmt.Errorf("分站 %d 已经开始: %w", race.Number, ErrGuessLocked)
	}
	return nil
}

// seasonGuessLockError 判定赛季竞猜在参考时间点是否被冻结。
// 时间锁启用时，赛季首场比赛开始后冻结。
func seasonGuessLockError(firstRace catalog.RaceInfo, timingEnabled bool, now time.Time) error {
	if timingEnabled && firstRace.HasStarted(now) {
		return fmt.Errorf("赛季已经开始: %w", ErrGuessLocked)
	}
	return nil
}

// UpdateRaceGuess 写入或更新一条单场竞猜。
// 分站已有正式结果、或（启用时间锁时）比赛已经开始后拒绝写入。
func UpdateRaceGuess(userName string, raceNumber int, pxxDriver string, dnfPick Pick) error {
	user, err := catalog.UserByName(userName)
	if err != nil {
		return err
	}
	if !user.Enabled {
		return fmt.Errorf("玩家 %q 已被禁用，不能提交竞猜", userName)
	}

	race, err := catalog.RaceByNumber(raceNumber)
	if err != nil {
		return err
	}

	published, err := result.HasResult(raceNumber)
	if err != nil {
		return err
	}
	if err := raceGuessLockError(race, published, config.Cfg.League.EnableTiming, time.Now()); err != nil {
		return err
	}

	if _, err := catalog.DriverByName(pxxDriver); err != nil {
		return err
	}
	dnfDriver := ""
	if name, ok := dnfPick.Name(); ok {
		if _, err := catalog.DriverByName(name); err != nil {
			return err
		}
		dnfDriver = name
	}

	dbGuess := RaceGuess{
		UserName:   userName,
		RaceNumber: raceNumber,
		PxxDriver:  pxxDriver,
		DNFDriver:  dnfDriver,
	}
	err = database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_name"}, {Name: "race_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"pxx_driver", "dnf_driver", "updated_at"}),
	}).Create(&dbGuess).Error
	if err != nil {
		return fmt.Errorf("无法写入玩家 %q 对分站 %d 的竞猜: %w", userName, raceNumber, err)
	}

	generation.Bump(generation.RaceGuesses)
	return nil
}

// SeasonGuessUpdate 是一次赛季竞猜提交的全部数据。
type SeasonGuessUpdate struct {
	HotTake       *string
	P2Team        Pick
	MostOvertakes Pick
	MostDNFs      Pick
	MostGained    Pick
	MostLost      Pick
	TeamWinners   map[string]string
	Podiums       []string
}

// UpdateSeasonGuess 写入或更新一条赛季竞猜。
// 启用时间锁时，赛季首场比赛开始后拒绝写入。
func UpdateSeasonGuess(userName string, update SeasonGuessUpdate) error {
	user, err := catalog.UserByName(userName)
	if err != nil {
		return err
	}
	if !user.Enabled {
		return fmt.Errorf("玩家 %q 已被禁用，不能提交竞猜", userName)
	}

	if config.Cfg.League.EnableTiming {
		firstRace, err := catalog.FirstRace()
		if err != nil {
			return err
		}
		if err := seasonGuessLockError(firstRace, true, time.Now()); err != nil {
			return err
		}
	}

	if err := validateSeasonUpdate(update); err != nil {
		return err
	}

	teamWinnersJSON, err := json.Marshal(nonNilMap(update.TeamWinners))
	if err != nil {
		return fmt.Errorf("无法序列化队内胜者竞猜: %w", err)
	}
	podiumsJSON, err := json.Marshal(nonNilSlice(update.Podiums))
	if err != nil {
		return fmt.Errorf("无法序列化登台竞猜: %w", err)
	}

	dbGuess := SeasonGuess{
		UserName:        userName,
		HotTake:         update.HotTake,
		P2Team:          columnFromPick(update.P2Team),
		MostOvertakes:   columnFromPick(update.MostOvertakes),
		MostDNFs:        columnFromPick(update.MostDNFs),
		MostGained:      columnFromPick(update.MostGained),
		MostLost:        columnFromPick(update.MostLost),
		TeamWinnersJSON: string(teamWinnersJSON),
		PodiumsJSON:     string(podiumsJSON),
	}
	err = database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"hot_take", "p2_team", "most_overtakes", "most_dnfs", "most_gained", "most_lost",
			"team_winners_json", "podiums_json", "updated_at",
		}),
	}).Create(&dbGuess).Error
	if err != nil {
		return fmt.Errorf("无法写入玩家 %q 的赛季竞猜: %w", userName, err)
	}

	generation.Bump(generation.SeasonGuesses)
	return nil
}

// validateSeasonUpdate 校验赛季竞猜引用的实体都存在且关系正确。
func validateSeasonUpdate(update SeasonGuessUpdate) error {
	if name, ok := update.P2Team.Name(); ok {
		if _, err := catalog.TeamByName(name); err != nil {
			return err
		}
	}
	for _, pick := range []Pick{update.MostOvertakes, update.MostDNFs, update.MostGained, update.MostLost} {
		if name, ok := pick.Name(); ok {
			if _, err := catalog.DriverByName(name); err != nil {
				return err
			}
		}
	}
	for teamName, driverName := range update.TeamWinners {
		if _, err := catalog.TeamByName(teamName); err != nil {
			return err
		}
		driver, err := catalog.DriverByName(driverName)
		if err != nil {
			return err
		}
		if driver.TeamName != teamName {
			return fmt.Errorf("车手 %q 不属于车队 %q", driverName, teamName)
		}
	}
	for _, driverName := range update.Podiums {
		if _, err := catalog.DriverByName(driverName); err != nil {
			return err
		}
	}
	return nil
}

// UpdateSeasonGuessResult 录入官方对大胆预言和超车竞猜的判定。
// 判定随时可以修改（它不属于被冻结的竞猜本体）。
func UpdateSeasonGuessResult(userName string, hotTakeCorrect, overtakesCorrect bool) error {
	if _, err := catalog.UserByName(userName); err != nil {
		return err
	}

	dbResult := SeasonGuessResult{
		UserName:         userName,
		HotTakeCorrect:   hotTakeCorrect,
		OvertakesCorrect: overtakesCorrect,
	}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"hot_take_correct", "overtakes_correct", "updated_at"}),
	}).Create(&dbResult).Error
	if err != nil {
		return fmt.Errorf("无法写入玩家 %q 的赛季竞猜判定: %w", userName, err)
	}

	generation.Bump(generation.SeasonGuesses)
	return nil
}

func columnFromPick(pick Pick) *string {
	if name, ok := pick.Name(); ok {
		return &name
	}
	return nil
}

func nonNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func nonNilSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
