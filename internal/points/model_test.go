package points

import (
	"reflect"
	"testing"

	"github.com/SlpAus/formula10-league-backend/internal/catalog"
	"github.com/SlpAus/formula10-league-backend/internal/guess"
	"github.com/SlpAus/formula10-league-backend/internal/result"
)

func raceFixture(number int) catalog.RaceInfo {
	return catalog.RaceInfo{Number: number, Name: "Race", PlaceToGuess: 10}
}

func TestNewRaceModel(t *testing.T) {
	races := []catalog.RaceInfo{raceFixture(1), raceFixture(2), raceFixture(3)}
	results := []result.Result{
		result.New(1, grid(20), []string{"D18"}, []string{"D18"}, nil, "D01", nil),
	}
	guesses := map[int]map[string]guess.RaceGuessView{
		1: {
			"Anna": {UserName: "Anna", RaceNumber: 1, PxxPick: "D10", DNFPick: guess.PickOf("D18")},
		},
		2: {
			"Anna": {UserName: "Anna", RaceNumber: 2, PxxPick: "D01", DNFPick: guess.NoPick()},
		},
	}

	model := newRaceModel([]string{"Anna", "Ben"}, races, results, guesses)

	if found := model.Totals["Anna"]; found != 20 {
		t.Errorf("Anna's total expected 20, found %d", found)
	}
	if found := model.Totals["Ben"]; found != 0 {
		t.Errorf("Ben's total expected 0, found %d", found)
	}
	// 第2站还没有结果，竞猜计数但不计分
	if found := model.GuessCounts["Anna"]; found != 2 {
		t.Errorf("Anna's guess count expected 2, found %d", found)
	}
	if found := model.PicksWithPoints["Anna"]; found != 2 {
		t.Errorf("Anna's picks with points expected 2, found %d", found)
	}
	if found := model.PointsPerPick("Anna"); found != 5.0 {
		t.Errorf("Anna's points per pick expected 5.0, found %f", found)
	}
	if found := model.PointsPerPick("Ben"); found != 0.0 {
		t.Errorf("Ben's points per pick expected 0.0, found %f", found)
	}
	if found := model.Standings.PositionOf["Anna"]; found != 1 {
		t.Errorf("Anna's standing expected 1, found %d", found)
	}

	series, err := model.SeriesFor("Anna")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(series, []int{0, 20, 0, 0}) {
		t.Errorf("Anna's series expected [0 20 0 0], found %v", series)
	}
	if _, err := model.SeriesFor("Nobody"); err == nil {
		t.Errorf("expected an error for an unknown user")
	}

	if found, err := model.PointsFor("Anna", 1); err != nil || found != 20 {
		t.Errorf("Anna's points for race 1 expected 20, found %d (err %v)", found, err)
	}
	if found, err := model.PointsFor("Anna", 2); err != nil || found != 0 {
		t.Errorf("Anna's points for the resultless race 2 expected 0, found %d (err %v)", found, err)
	}
	if _, err := model.PointsFor("Anna", 4); err == nil {
		t.Errorf("expected an error for a race outside the calendar")
	}
}

func TestNewRaceModelIsIdempotent(t *testing.T) {
	races := []catalog.RaceInfo{raceFixture(1)}
	results := []result.Result{
		result.New(1, grid(20), nil, nil, nil, "D01", nil),
	}
	guesses := map[int]map[string]guess.RaceGuessView{
		1: {
			"Anna": {UserName: "Anna", RaceNumber: 1, PxxPick: "D11", DNFPick: guess.NoPick()},
		},
	}

	first := newRaceModel([]string{"Anna"}, races, results, guesses)
	second := newRaceModel([]string{"Anna"}, races, results, guesses)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two builds over the same snapshot expected identical models")
	}
}

// 四车手/两车队的小环境：名字取自2023参考积分表。
func driverModelFixture() *DriverModel {
	drivers := []catalog.DriverInfo{
		{Name: "Max Verstappen", Abbr: "VER", TeamName: "Red Bull", Active: true},
		{Name: "Sergio Perez", Abbr: "PER", TeamName: "Red Bull", Active: true},
		{Name: "Lewis Hamilton", Abbr: "HAM", TeamName: "Mercedes", Active: true},
		{Name: "George Russel", Abbr: "RUS", TeamName: "Mercedes", Active: true},
	}
	teams := []catalog.TeamInfo{{Name: "Red Bull"}, {Name: "Mercedes"}}
	races := []catalog.RaceInfo{raceFixture(1)}
	results := []result.Result{
		result.New(1,
			[]string{"Lewis Hamilton", "George Russel", "Max Verstappen", "Sergio Perez"},
			[]string{"Sergio Perez"}, []string{"Sergio Perez"}, nil,
			"Lewis Hamilton", nil),
	}
	return newDriverModel(drivers, teams, races, results)
}

func TestDriverModelStandings(t *testing.T) {
	model := driverModelFixture()

	if found := model.DriverTotals["Lewis Hamilton"]; found != 26 {
		t.Errorf("Hamilton's total expected 26, found %d", found)
	}
	if found := model.TeamTotals["Mercedes"]; found != 44 {
		t.Errorf("Mercedes' total expected 44, found %d", found)
	}
	if found := model.TeamTotals["Red Bull"]; found != 27 {
		t.Errorf("Red Bull's total expected 27, found %d", found)
	}
	if found := model.DriverStandings.PositionOf["George Russel"]; found != 2 {
		t.Errorf("Russel's standing expected 2, found %d", found)
	}
	if found := model.TeamStandings.PositionOf["Red Bull"]; found != 2 {
		t.Errorf("Red Bull's standing expected 2, found %d", found)
	}
}

func TestDriverModelMostFacts(t *testing.T) {
	model := driverModelFixture()

	// 参考位次8、当前位次2，Russel是上升最多的车手
	if !reflect.DeepEqual(model.MostGained, []string{"George Russel"}) {
		t.Errorf("most gained expected [George Russel], found %v", model.MostGained)
	}
	// Verstappen 1→3 和 Perez 2→4 并列下降最多
	if !reflect.DeepEqual(model.MostLost, []string{"Max Verstappen", "Sergio Perez"}) {
		t.Errorf("most lost expected [Max Verstappen Sergio Perez], found %v", model.MostLost)
	}
	if !reflect.DeepEqual(model.MostDNFs, []string{"Sergio Perez"}) {
		t.Errorf("most DNFs expected [Sergio Perez], found %v", model.MostDNFs)
	}
}

func TestDriverModelPodiumDetection(t *testing.T) {
	model := driverModelFixture()

	for _, name := range []string{"Lewis Hamilton", "George Russel", "Max Verstappen"} {
		if !model.PodiumDrivers[name] {
			t.Errorf("expected %s to have a podium", name)
		}
	}
	if model.PodiumDrivers["Sergio Perez"] {
		t.Errorf("P4 must not count as a podium")
	}
}

func TestIsTeamWinner(t *testing.T) {
	model := driverModelFixture()

	winner, err := model.IsTeamWinner("Lewis Hamilton")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !winner {
		t.Errorf("the better-ranked teammate expected to be the team winner")
	}

	winner, err = model.IsTeamWinner("George Russel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if winner {
		t.Errorf("the worse-ranked teammate must not be the team winner")
	}
}
