package points

import (
	"github.com/SlpAus/formula10-league-backend/internal/catalog"
	"github.com/SlpAus/formula10-league-backend/internal/guess"
)

// --- 赛季竞猜评定 ---

// SeasonEvaluation 是一名玩家的赛季竞猜对照当前积分状态的完整评定。
type SeasonEvaluation struct {
	UserName string

	// 六个大项的命中情况。大胆预言和超车两项读取人工判定，
	// 没有录入判定时默认不命中。
	HotTakeCorrect    bool
	P2TeamCorrect     bool
	OvertakesCorrect  bool
	MostDNFsCorrect   bool
	MostGainedCorrect bool
	MostLostCorrect   bool

	// TeamWinnerCorrect 按车队名记录队内胜者竞猜的命中情况
	TeamWinnerCorrect map[string]bool

	BigPickPoints    int
	TeamWinnerPoints int
	PodiumPoints     int
	Total            int
}

// SeasonModel 持有全部启用玩家的赛季竞猜评定。
type SeasonModel struct {
	Evaluations map[string]SeasonEvaluation
}

// newSeasonModel 对照车手/车队积分模型评定所有赛季竞猜。
func newSeasonModel(driverModel *DriverModel, guesses []guess.SeasonGuessView, verdicts map[string]guess.SeasonGuessResultView) *SeasonModel {
	model := &SeasonModel{
		Evaluations: make(map[string]SeasonEvaluation, len(guesses)),
	}
	for _, view := range guesses {
		model.Evaluations[view.UserName] = evaluateSeasonGuess(driverModel, view, verdicts[view.UserName])
	}
	return model
}

// buildSeasonModel 从各存储读取当前数据并构造模型。
func buildSeasonModel() (*SeasonModel, error) {
	driverModel, err := CurrentDriverModel()
	if err != nil {
		return nil, err
	}
	guesses, err := guess.AllSeasonGuesses()
	if err != nil {
		return nil, err
	}
	verdictList, err := guess.AllSeasonGuessResults()
	if err != nil {
		return nil, err
	}
	verdicts := make(map[string]guess.SeasonGuessResultView, len(verdictList))
	for _, verdict := range verdictList {
		verdicts[verdict.UserName] = verdict
	}
	return newSeasonModel(driverModel, guesses, verdicts), nil
}

// evaluateSeasonGuess 评定单条赛季竞猜。
func evaluateSeasonGuess(driverModel *DriverModel, view guess.SeasonGuessView, verdict guess.SeasonGuessResultView) SeasonEvaluation {
	evaluation := SeasonEvaluation{
		UserName:          view.UserName,
		HotTakeCorrect:    verdict.HotTakeCorrect,
		OvertakesCorrect:  verdict.OvertakesCorrect,
		TeamWinnerCorrect: make(map[string]bool, len(view.TeamWinners)),
	}

	if name, ok := view.P2Team.Name(); ok {
		evaluation.P2TeamCorrect = driverModel.TeamStandings.PositionOf[name] == 2
	}
	if name, ok := view.MostDNFs.Name(); ok {
		evaluation.MostDNFsCorrect = containsName(driverModel.MostDNFs, name)
	}
	if name, ok := view.MostGained.Name(); ok {
		evaluation.MostGainedCorrect = containsName(driverModel.MostGained, name)
	}
	if name, ok := view.MostLost.Name(); ok {
		evaluation.MostLostCorrect = containsName(driverModel.MostLost, name)
	}

	for _, correct := range []bool{
		evaluation.HotTakeCorrect,
		evaluation.P2TeamCorrect,
		evaluation.OvertakesCorrect,
		evaluation.MostDNFsCorrect,
		evaluation.MostGainedCorrect,
		evaluation.MostLostCorrect,
	} {
		if correct {
			evaluation.BigPickPoints += seasonGuessPickPoints
		}
	}

	for teamName, driverName := range view.TeamWinners {
		// 无法裁定的竞猜（未知车手、名单异常）按未命中计，
		// 单条竞猜的数据问题不影响其他玩家的评定
		winner, _ := driverModel.IsTeamWinner(driverName)
		evaluation.TeamWinnerCorrect[teamName] = winner
		if winner {
			evaluation.TeamWinnerPoints += seasonGuessTeamWinnerCorrectPoints
		} else {
			evaluation.TeamWinnerPoints += seasonGuessTeamWinnerFalsePoints
		}
	}

	// 登台竞猜对全名单逐一评定：漏报登台者与误报同罚
	picked := make(map[string]bool, len(view.Podiums))
	for _, name := range view.Podiums {
		picked[name] = true
	}
	for _, driver := range driverModel.Drivers {
		hasPodium := driverModel.PodiumDrivers[driver.Name]
		switch {
		case picked[driver.Name] && hasPodium:
			evaluation.PodiumPoints += seasonGuessPodiumCorrectPoints
		case picked[driver.Name] && !hasPodium:
			evaluation.PodiumPoints += seasonGuessPodiumFalsePoints
		case !picked[driver.Name] && hasPodium:
			evaluation.PodiumPoints += seasonGuessPodiumFalsePoints
		}
	}

	evaluation.Total = evaluation.BigPickPoints + evaluation.TeamWinnerPoints + evaluation.PodiumPoints
	return evaluation
}

func containsName(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}

// rosterNames 返回全名单车手名，供统计输出使用。
func rosterNames(drivers []catalog.DriverInfo) []string {
	names := make([]string, 0, len(drivers))
	for _, driver := range drivers {
		names = append(names, driver.Name)
	}
	return names
}
