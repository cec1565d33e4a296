package guess

import (
	"errors"
	"testing"
	"time"

	"github.com/SlpAus/formula10-league-backend/internal/catalog"
)

func TestRaceGuessFrozenAfterResult(t *testing.T) {
	race := catalog.RaceInfo{Number: 5, Date: time.Date(2024, 5, 5, 15, 0, 0, 0, time.UTC)}
	before := race.Date.Add(-time.Hour)

	// 结果一旦录入，即使时间锁关闭也冻结
	err := raceGuessLockError(race, true, false, before)
	if !errors.Is(err, ErrGuessLocked) {
		t.Errorf("a published result expected ErrGuessLocked, found %v", err)
	}
}

func TestRaceGuessFrozenAfterStart(t *testing.T) {
	race := catalog.RaceInfo{Number: 5, Date: time.Date(2024, 5, 5, 15, 0, 0, 0, time.UTC)}
	after := race.Date.Add(time.Minute)

	err := raceGuessLockError(race, false, true, after)
	if !errors.Is(err, ErrGuessLocked) {
		t.Errorf("a started race expected ErrGuessLocked, found %v", err)
	}

	// 时间锁关闭时开赛不冻结（历史数据导入）
	if err := raceGuessLockError(race, false, false, after); err != nil {
		t.Errorf("with timing disabled expected no lock, found %v", err)
	}
}

func TestRaceGuessOpenBeforeStart(t *testing.T) {
	race := catalog.RaceInfo{Number: 5, Date: time.Date(2024, 5, 5, 15, 0, 0, 0, time.UTC)}
	before := race.Date.Add(-time.Hour)

	if err := raceGuessLockError(race, false, true, before); err != nil {
		t.Errorf("an open guessing window expected no error, found %v", err)
	}
}

func TestSeasonGuessFrozenAfterSeasonStart(t *testing.T) {
	firstRace := catalog.RaceInfo{Number: 1, Date: time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)}

	err := seasonGuessLockError(firstRace, true, firstRace.Date.Add(time.Minute))
	if !errors.Is(err, ErrGuessLocked) {
		t.Errorf("a started season expected ErrGuessLocked, found %v", err)
	}

	if err := seasonGuessLockError(firstRace, true, firstRace.Date.Add(-time.Minute)); err != nil {
		t.Errorf("before the season start expected no lock, found %v", err)
	}
	if err := seasonGuessLockError(firstRace, false, firstRace.Date.Add(time.Minute)); err != nil {
		t.Errorf("with timing disabled expected no lock, found %v", err)
	}
}
