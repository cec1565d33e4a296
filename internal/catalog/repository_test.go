package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/SlpAus/formula10-league-backend/pkg/lookup"
)

func seedRepository() func() {
	previous := globalRepository
	globalRepository = &repository{
		drivers: []DriverInfo{
			{Name: "Charles Leclerc", Abbr: "LEC", TeamName: "Ferrari", Active: true},
			{Name: "Carlos Sainz", Abbr: "SAI", TeamName: "Ferrari", Active: true},
			{Name: "Oliver Bearman", Abbr: "BEA", TeamName: "Ferrari", Active: false},
			{Name: "Max Verstappen", Abbr: "VER", TeamName: "Red Bull", Active: true},
		},
		teams: []TeamInfo{{Name: "Ferrari"}, {Name: "Red Bull"}},
		races: []RaceInfo{
			{Number: 1, Name: "Bahrain", Date: time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC), PlaceToGuess: 10},
			{Number: 2, Name: "Saudi Arabia", Date: time.Date(2024, 3, 9, 17, 0, 0, 0, time.UTC), PlaceToGuess: 10},
			{Number: 3, Name: "Australia", Date: time.Date(2024, 3, 24, 4, 0, 0, 0, time.UTC), PlaceToGuess: 10},
		},
	}
	return func() { globalRepository = previous }
}

func TestAllRacesDescending(t *testing.T) {
	defer seedRepository()()

	races := AllRacesDescending()
	if len(races) != 3 {
		t.Fatalf("expected 3 races, found %d", len(races))
	}
	for i, expected := range []int{3, 2, 1} {
		if races[i].Number != expected {
			t.Errorf("race at index %d expected number %d, found %d", i, expected, races[i].Number)
		}
	}
	// 降序副本不影响仓库内的升序原序
	if AllRaces()[0].Number != 1 {
		t.Errorf("ascending order expected to survive a descending query")
	}
}

func TestLastRaceNumber(t *testing.T) {
	defer seedRepository()()

	if found := LastRaceNumber(); found != 3 {
		t.Errorf("last race number expected 3, found %d", found)
	}
}

func TestDriverByAbbr(t *testing.T) {
	defer seedRepository()()

	driver, err := DriverByAbbr("VER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.Name != "Max Verstappen" {
		t.Errorf("expected 'Max Verstappen', found '%s'", driver.Name)
	}

	if _, err := DriverByAbbr("XXX"); !errors.Is(err, lookup.ErrNotFound) {
		t.Errorf("an unknown abbreviation expected lookup.ErrNotFound, found %v", err)
	}
}

func TestRaceByName(t *testing.T) {
	defer seedRepository()()

	race, err := RaceByName("Saudi Arabia")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if race.Number != 2 {
		t.Errorf("race number expected 2, found %d", race.Number)
	}

	if _, err := RaceByName("Monaco"); !errors.Is(err, lookup.ErrNotFound) {
		t.Errorf("an unknown race expected lookup.ErrNotFound, found %v", err)
	}
}

func TestDriversForTeam(t *testing.T) {
	defer seedRepository()()

	// 只看现役：恰好两人
	active, err := DriversForTeam("Ferrari", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("expected 2 active drivers, found %d", len(active))
	}

	// 含停用车手：替补也算
	all, err := DriversForTeam("Ferrari", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 drivers including the stand-in, found %d", len(all))
	}

	// 独苗车队不满足队友恒等式
	if _, err := DriversForTeam("Red Bull", false); !errors.Is(err, lookup.ErrCardinality) {
		t.Errorf("a one-driver team expected lookup.ErrCardinality, found %v", err)
	}
}
