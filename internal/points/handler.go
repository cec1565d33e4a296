package points

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/SlpAus/formula10-league-backend/pkg/lookup"
	"github.com/gin-gonic/gin"
)

// --- API响应模型 ---

type UserPointsResponse struct {
	UserName        string  `json:"userName"`
	Series          []int   `json:"series"`
	Cumulative      []int   `json:"cumulative"`
	Total           int     `json:"total"`
	GuessCount      int     `json:"guessCount"`
	PicksWithPoints int     `json:"picksWithPoints"`
	PointsPerPick   float64 `json:"pointsPerPick"`
}

type UserStandingResponse struct {
	UserPointsResponse
	SeasonTotal int `json:"seasonTotal"`
	GrandTotal  int `json:"grandTotal"`
}

type EntityPointsResponse struct {
	Name       string `json:"name"`
	Series     []int  `json:"series"`
	Cumulative []int  `json:"cumulative"`
	Total      int    `json:"total"`
}

type StandingsResponse struct {
	ByPosition map[int][]string `json:"byPosition"`
	PositionOf map[string]int   `json:"positionOf"`
}

type LeaderboardResponse struct {
	Source  string             `json:"source"` // mirror或direct
	Entries []LeaderboardEntry `json:"entries"`
}

type StatsResponse struct {
	MostDNFs      []string        `json:"mostDnfs"`
	MostGained    []string        `json:"mostGained"`
	MostLost      []string        `json:"mostLost"`
	DNFCounts     map[string]int  `json:"dnfCounts"`
	StandingDiffs map[string]int  `json:"standingDiffs"`
	PodiumDrivers []string        `json:"podiumDrivers"`
	Roster        []string        `json:"roster"`
	TeamWinners   map[string]bool `json:"teamWinners"` // 车手名 -> 是否赢下队内对决
}

type SeasonEvaluationResponse struct {
	UserName          string          `json:"userName"`
	HotTakeCorrect    bool            `json:"hotTakeCorrect"`
	P2TeamCorrect     bool            `json:"p2TeamCorrect"`
	OvertakesCorrect  bool            `json:"overtakesCorrect"`
	MostDNFsCorrect   bool            `json:"mostDnfsCorrect"`
	MostGainedCorrect bool            `json:"mostGainedCorrect"`
	MostLostCorrect   bool            `json:"mostLostCorrect"`
	TeamWinnerCorrect map[string]bool `json:"teamWinnerCorrect"`
	BigPickPoints     int             `json:"bigPickPoints"`
	TeamWinnerPoints  int             `json:"teamWinnerPoints"`
	PodiumPoints      int             `json:"podiumPoints"`
	Total             int             `json:"total"`
}

func newUserPointsResponse(model *RaceModel, userName string) UserPointsResponse {
	series := model.Series[userName]
	return UserPointsResponse{
		UserName:        userName,
		Series:          series,
		Cumulative:      cumulative(series),
		Total:           model.Totals[userName],
		GuessCount:      model.GuessCounts[userName],
		PicksWithPoints: model.PicksWithPoints[userName],
		PointsPerPick:   model.PointsPerPick(userName),
	}
}

func newSeasonEvaluationResponse(evaluation SeasonEvaluation) SeasonEvaluationResponse {
	return SeasonEvaluationResponse{
		UserName:          evaluation.UserName,
		HotTakeCorrect:    evaluation.HotTakeCorrect,
		P2TeamCorrect:     evaluation.P2TeamCorrect,
		OvertakesCorrect:  evaluation.OvertakesCorrect,
		MostDNFsCorrect:   evaluation.MostDNFsCorrect,
		MostGainedCorrect: evaluation.MostGainedCorrect,
		MostLostCorrect:   evaluation.MostLostCorrect,
		TeamWinnerCorrect: evaluation.TeamWinnerCorrect,
		BigPickPoints:     evaluation.BigPickPoints,
		TeamWinnerPoints:  evaluation.TeamWinnerPoints,
		PodiumPoints:      evaluation.PodiumPoints,
		Total:             evaluation.Total,
	}
}

// --- 控制器函数 ---

// GetUserPoints 返回全部玩家的积分序列和总分。
func GetUserPoints(c *gin.Context) {
	model, err := CurrentRaceModel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "计算玩家积分失败"})
		return
	}

	responses := make([]UserPointsResponse, 0, len(model.Series))
	for userName := range model.Series {
		responses = append(responses, newUserPointsResponse(model, userName))
	}
	sort.Slice(responses, func(i, j int) bool { return responses[i].UserName < responses[j].UserName })
	c.JSON(http.StatusOK, responses)
}

// GetUserStanding 返回某玩家的积分明细。
// includeSeason=true时附带赛季竞猜得分和两者之和。
func GetUserStanding(c *gin.Context) {
	userName := c.Param("name")
	model, err := CurrentRaceModel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "计算玩家积分失败"})
		return
	}
	if _, err := model.SeriesFor(userName); err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "计算玩家积分失败"})
		return
	}

	response := UserStandingResponse{UserPointsResponse: newUserPointsResponse(model, userName)}
	if c.Query("includeSeason") == "true" {
		seasonModel, err := CurrentSeasonModel()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "计算赛季竞猜得分失败"})
			return
		}
		response.SeasonTotal = seasonModel.Evaluations[userName].Total
	}
	response.GrandTotal = response.Total + response.SeasonTotal
	c.JSON(http.StatusOK, response)
}

// GetUserPointsForRace 返回某玩家在单个分站拿到的分数。
func GetUserPointsForRace(c *gin.Context) {
	userName := c.Param("name")
	raceNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "分站序号必须是整数"})
		return
	}

	model, err := CurrentRaceModel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "计算玩家积分失败"})
		return
	}
	racePoints, err := model.PointsFor(userName, raceNumber)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "计算玩家积分失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userName":   userName,
		"raceNumber": raceNumber,
		"points":     racePoints,
	})
}

// GetDriverPoints 返回全部车手的积分序列和总分。
func GetDriverPoints(c *gin.Context) {
	model, err := CurrentDriverModel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "计算车手积分失败"})
		return
	}
	c.JSON(http.StatusOK, entityPointsResponses(model.DriverSeries, model.DriverTotals))
}

// GetTeamPoints 返回全部车队的积分序列和总分。
func GetTeamPoints(c *gin.Context) {
	model, err := CurrentDriverModel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "计算车队积分失败"})
		return
	}
	c.JSON(http.StatusOK, entityPointsResponses(model.TeamSeries, model.TeamTotals))
}

func entityPointsResponses(series map[string][]int, totals map[string]int) []EntityPointsResponse {
	responses := make([]EntityPointsResponse, 0, len(series))
	for name, s := range series {
		responses = append(responses, EntityPointsResponse{
			Name:       name,
			Series:     s,
			Cumulative: cumulative(s),
			Total:      totals[name],
		})
	}
	sort.Slice(responses, func(i, j int) bool { return responses[i].Name < responses[j].Name })
	return responses
}

// GetStandings 返回指定类型（users/drivers/teams）的排名表。
func GetStandings(c *gin.Context) {
	var standings Standings
	switch kind := c.Param("kind"); kind {
	case "users":
		model, err := CurrentRaceModel()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "计算排名失败"})
			return
		}
		standings = model.Standings
	case "drivers":
		model, err := CurrentDriverModel()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "计算排名失败"})
			return
		}
		standings = model.DriverStandings
	case "teams":
		model, err := CurrentDriverModel()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "计算排名失败"})
			return
		}
		standings = model.TeamStandings
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的排名类型: " + kind})
		return
	}
	c.JSON(http.StatusOK, StandingsResponse{
		ByPosition: standings.ByPosition,
		PositionOf: standings.PositionOf,
	})
}

// GetLeaderboard 返回排行榜，优先从Redis镜像读取。
func GetLeaderboard(c *gin.Context) {
	entries, fromMirror, err := Leaderboard(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	source := "direct"
	if fromMirror {
		source = "mirror"
	}
	c.JSON(http.StatusOK, LeaderboardResponse{Source: source, Entries: entries})
}

// GetStats 返回退赛/排名变化等派生统计。
func GetStats(c *gin.Context) {
	model, err := CurrentDriverModel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "计算统计数据失败"})
		return
	}

	podium := make([]string, 0, len(model.PodiumDrivers))
	for name := range model.PodiumDrivers {
		podium = append(podium, name)
	}
	sort.Strings(podium)

	// 对决无法裁定的车手（名单异常）不进入映射
	teamWinners := make(map[string]bool, len(model.Drivers))
	for _, driver := range model.Drivers {
		if !driver.Active {
			continue
		}
		winner, err := model.IsTeamWinner(driver.Name)
		if err != nil {
			continue
		}
		teamWinners[driver.Name] = winner
	}

	c.JSON(http.StatusOK, StatsResponse{
		MostDNFs:      model.MostDNFs,
		MostGained:    model.MostGained,
		MostLost:      model.MostLost,
		DNFCounts:     model.DNFCounts,
		StandingDiffs: model.StandingDiffs,
		PodiumDrivers: podium,
		Roster:        rosterNames(model.Drivers),
		TeamWinners:   teamWinners,
	})
}

// GetSeasonEvaluations 返回全部玩家的赛季竞猜评定。
func GetSeasonEvaluations(c *gin.Context) {
	model, err := CurrentSeasonModel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "计算赛季竞猜评定失败"})
		return
	}
	responses := make([]SeasonEvaluationResponse, 0, len(model.Evaluations))
	for _, evaluation := range model.Evaluations {
		responses = append(responses, newSeasonEvaluationResponse(evaluation))
	}
	sort.Slice(responses, func(i, j int) bool { return responses[i].UserName < responses[j].UserName })
	c.JSON(http.StatusOK, responses)
}

// GetSeasonEvaluationForUser 返回某玩家的赛季竞猜评定。
func GetSeasonEvaluationForUser(c *gin.Context) {
	userName := c.Param("name")
	model, err := CurrentSeasonModel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "计算赛季竞猜评定失败"})
		return
	}
	evaluation, ok := model.Evaluations[userName]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "该玩家没有赛季竞猜评定"})
		return
	}
	c.JSON(http.StatusOK, newSeasonEvaluationResponse(evaluation))
}
