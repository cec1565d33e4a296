package points

import (
	"testing"

	"github.com/SlpAus/formula10-league-backend/internal/catalog"
	"github.com/SlpAus/formula10-league-backend/internal/guess"
	"github.com/SlpAus/formula10-league-backend/internal/result"
)

func TestPodiumPicksPenalizeMisses(t *testing.T) {
	// 两人都登台，只报了其中一人：+3的同时漏报罚-2
	drivers := []catalog.DriverInfo{
		{Name: "Max Verstappen", Abbr: "VER", TeamName: "Red Bull", Active: true},
		{Name: "Sergio Perez", Abbr: "PER", TeamName: "Red Bull", Active: true},
	}
	teams := []catalog.TeamInfo{{Name: "Red Bull"}}
	races := []catalog.RaceInfo{raceFixture(1)}
	results := []result.Result{
		result.New(1, []string{"Max Verstappen", "Sergio Perez"}, nil, nil, nil, "Max Verstappen", nil),
	}
	driverModel := newDriverModel(drivers, teams, races, results)

	view := guess.SeasonGuessView{
		UserName:    "Anna",
		TeamWinners: map[string]string{},
		Podiums:     []string{"Max Verstappen"},
	}
	evaluation := evaluateSeasonGuess(driverModel, view, guess.SeasonGuessResultView{})

	if evaluation.PodiumPoints != 1 {
		t.Errorf("podium points expected 1, found %d", evaluation.PodiumPoints)
	}
	if evaluation.Total != 1 {
		t.Errorf("season total expected 1, found %d", evaluation.Total)
	}
}

func TestEvaluateSeasonGuess(t *testing.T) {
	driverModel := driverModelFixture()

	hotTake := "Mercedes win both titles"
	view := guess.SeasonGuessView{
		UserName:      "Anna",
		HotTake:       &hotTake,
		P2Team:        guess.PickOf("Red Bull"),
		MostOvertakes: guess.PickOf("Max Verstappen"),
		MostDNFs:      guess.PickOf("Sergio Perez"),
		MostGained:    guess.PickOf("George Russel"),
		MostLost:      guess.PickOf("Max Verstappen"),
		TeamWinners: map[string]string{
			"Mercedes": "Lewis Hamilton",
			"Red Bull": "Sergio Perez",
		},
		Podiums: []string{"Lewis Hamilton", "George Russel", "Max Verstappen"},
	}
	verdict := guess.SeasonGuessResultView{UserName: "Anna", HotTakeCorrect: true, OvertakesCorrect: false}

	evaluation := evaluateSeasonGuess(driverModel, view, verdict)

	if !evaluation.HotTakeCorrect || evaluation.OvertakesCorrect {
		t.Errorf("verdict flags expected (true, false), found (%t, %t)", evaluation.HotTakeCorrect, evaluation.OvertakesCorrect)
	}
	if !evaluation.P2TeamCorrect {
		t.Errorf("Red Bull sits at position 2, the pick must be correct")
	}
	if !evaluation.MostDNFsCorrect || !evaluation.MostGainedCorrect || !evaluation.MostLostCorrect {
		t.Errorf("most-X picks expected correct, found (%t, %t, %t)",
			evaluation.MostDNFsCorrect, evaluation.MostGainedCorrect, evaluation.MostLostCorrect)
	}
	// 命中5个大项
	if evaluation.BigPickPoints != 50 {
		t.Errorf("big pick points expected 50, found %d", evaluation.BigPickPoints)
	}
	// 队内胜者一对一错
	if evaluation.TeamWinnerPoints != 0 {
		t.Errorf("team winner points expected 0, found %d", evaluation.TeamWinnerPoints)
	}
	if evaluation.TeamWinnerCorrect["Mercedes"] != true || evaluation.TeamWinnerCorrect["Red Bull"] != false {
		t.Errorf("team winner flags expected (true, false), found (%t, %t)",
			evaluation.TeamWinnerCorrect["Mercedes"], evaluation.TeamWinnerCorrect["Red Bull"])
	}
	// 三个登台者全部报中，没有漏报
	if evaluation.PodiumPoints != 9 {
		t.Errorf("podium points expected 9, found %d", evaluation.PodiumPoints)
	}
	if evaluation.Total != 59 {
		t.Errorf("season total expected 59, found %d", evaluation.Total)
	}
}

func TestTeamWinnerPickOnStandInDriver(t *testing.T) {
	// 替补上场后车队有三名车手；押停用车手的对决无法裁定，
	// 按未命中计分，其他玩家的评定不受影响
	drivers := []catalog.DriverInfo{
		{Name: "Charles Leclerc", Abbr: "LEC", TeamName: "Ferrari", Active: true},
		{Name: "Carlos Sainz", Abbr: "SAI", TeamName: "Ferrari", Active: true},
		{Name: "Oliver Bearman", Abbr: "BEA", TeamName: "Ferrari", Active: false},
	}
	teams := []catalog.TeamInfo{{Name: "Ferrari"}}
	races := []catalog.RaceInfo{raceFixture(1)}
	driverModel := newDriverModel(drivers, teams, races, nil)

	guesses := []guess.SeasonGuessView{
		{UserName: "Anna", TeamWinners: map[string]string{"Ferrari": "Oliver Bearman"}, Podiums: []string{}},
		{UserName: "Ben", TeamWinners: map[string]string{"Ferrari": "Carlos Sainz"}, Podiums: []string{}},
	}
	model := newSeasonModel(driverModel, guesses, nil)

	anna, ok := model.Evaluations["Anna"]
	if !ok {
		t.Fatalf("Anna's evaluation expected to be present")
	}
	if anna.TeamWinnerCorrect["Ferrari"] {
		t.Errorf("an undecidable team winner pick expected to count as incorrect")
	}
	if anna.TeamWinnerPoints != seasonGuessTeamWinnerFalsePoints {
		t.Errorf("team winner points expected %d, found %d", seasonGuessTeamWinnerFalsePoints, anna.TeamWinnerPoints)
	}

	// 没有结果时所有车手同分并列第一，Ben押的Sainz不落后于队友
	ben, ok := model.Evaluations["Ben"]
	if !ok {
		t.Fatalf("Ben's evaluation expected to be present")
	}
	if !ben.TeamWinnerCorrect["Ferrari"] {
		t.Errorf("Ben's decidable pick expected to be evaluated normally")
	}
}

func TestSeasonModelCoversAllGuesses(t *testing.T) {
	driverModel := driverModelFixture()
	guesses := []guess.SeasonGuessView{
		{UserName: "Anna", TeamWinners: map[string]string{}, Podiums: []string{}},
		{UserName: "Ben", TeamWinners: map[string]string{}, Podiums: []string{}},
	}
	verdicts := map[string]guess.SeasonGuessResultView{
		"Ben": {UserName: "Ben", HotTakeCorrect: true},
	}

	model := newSeasonModel(driverModel, guesses, verdicts)

	if len(model.Evaluations) != 2 {
		t.Errorf("expected 2 evaluations, found %d", len(model.Evaluations))
	}
	// 没有录入判定时默认不命中
	if model.Evaluations["Anna"].HotTakeCorrect {
		t.Errorf("a missing verdict expected to default to incorrect")
	}
	if !model.Evaluations["Ben"].HotTakeCorrect {
		t.Errorf("Ben's hot take expected correct")
	}
}
