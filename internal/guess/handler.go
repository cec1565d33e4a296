package guess

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SlpAus/formula10-league-backend/pkg/lookup"
	"github.com/gin-gonic/gin"
)

// --- API响应模型 ---

type RaceGuessResponse struct {
	UserName   string  `json:"userName"`
	RaceNumber int     `json:"raceNumber"`
	PxxDriver  string  `json:"pxxDriver"`
	DNFDriver  *string `json:"dnfDriver"` // null表示预测无人退赛
}

type SeasonGuessResponse struct {
	UserName      string            `json:"userName"`
	HotTake       *string           `json:"hotTake"`
	P2Team        *string           `json:"p2Team"`
	MostOvertakes *string           `json:"mostOvertakes"`
	MostDNFs      *string           `json:"mostDnfs"`
	MostGained    *string           `json:"mostGained"`
	MostLost      *string           `json:"mostLost"`
	TeamWinners   map[string]string `json:"teamWinners"`
	Podiums       []string          `json:"podiums"`
}

// --- 请求模型 ---

type postRaceGuessRequest struct {
	UserName   string  `json:"userName" binding:"required"`
	RaceNumber int     `json:"raceNumber" binding:"required"`
	PxxDriver  string  `json:"pxxDriver" binding:"required"`
	DNFDriver  *string `json:"dnfDriver"` // 省略或null表示预测无人退赛
}

type postSeasonGuessRequest struct {
	UserName      string            `json:"userName" binding:"required"`
	HotTake       *string           `json:"hotTake"`
	P2Team        *string           `json:"p2Team"`
	MostOvertakes *string           `json:"mostOvertakes"`
	MostDNFs      *string           `json:"mostDnfs"`
	MostGained    *string           `json:"mostGained"`
	MostLost      *string           `json:"mostLost"`
	TeamWinners   map[string]string `json:"teamWinners"`
	Podiums       []string          `json:"podiums"`
}

type postSeasonGuessResultRequest struct {
	UserName         string `json:"userName" binding:"required"`
	HotTakeCorrect   *bool  `json:"hotTakeCorrect" binding:"required"`
	OvertakesCorrect *bool  `json:"overtakesCorrect" binding:"required"`
}

func pickFromRequest(field *string) Pick {
	if field == nil || *field == "" {
		return NoPick()
	}
	return PickOf(*field)
}

func pickToResponse(pick Pick) *string {
	if name, ok := pick.Name(); ok {
		return &name
	}
	return nil
}

// --- 控制器函数 ---

// GetRaceGuessesForUser 返回某玩家的全部单场竞猜。
func GetRaceGuessesForUser(c *gin.Context) {
	userName := c.Param("name")
	views, err := RaceGuessesForUser(userName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取竞猜失败"})
		return
	}
	responses := make([]RaceGuessResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, RaceGuessResponse{
			UserName:   view.UserName,
			RaceNumber: view.RaceNumber,
			PxxDriver:  view.PxxPick,
			DNFDriver:  pickToResponse(view.DNFPick),
		})
	}
	c.JSON(http.StatusOK, responses)
}

// GetRaceGuessesForRace 返回启用玩家对某分站的全部竞猜。
func GetRaceGuessesForRace(c *gin.Context) {
	raceNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "分站序号必须是整数"})
		return
	}
	views, err := RaceGuessesForRace(raceNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取竞猜失败"})
		return
	}
	responses := make([]RaceGuessResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, RaceGuessResponse{
			UserName:   view.UserName,
			RaceNumber: view.RaceNumber,
			PxxDriver:  view.PxxPick,
			DNFDriver:  pickToResponse(view.DNFPick),
		})
	}
	c.JSON(http.StatusOK, responses)
}

// GetRaceGuessForUserAndRace 返回某玩家对某分站的竞猜。
func GetRaceGuessForUserAndRace(c *gin.Context) {
	userName := c.Param("name")
	raceNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "分站序号必须是整数"})
		return
	}
	view, ok, err := RaceGuessForUserAndRace(userName, raceNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取竞猜失败"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "该玩家没有对这个分站提交竞猜"})
		return
	}
	c.JSON(http.StatusOK, RaceGuessResponse{
		UserName:   view.UserName,
		RaceNumber: view.RaceNumber,
		PxxDriver:  view.PxxPick,
		DNFDriver:  pickToResponse(view.DNFPick),
	})
}

// PostRaceGuess 提交或更新一条单场竞猜。
func PostRaceGuess(c *gin.Context) {
	var req postRaceGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体缺少必要字段"})
		return
	}

	err := UpdateRaceGuess(req.UserName, req.RaceNumber, req.PxxDriver, pickFromRequest(req.DNFDriver))
	if err != nil {
		switch {
		case errors.Is(err, ErrGuessLocked):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, lookup.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetSeasonGuessForUser 返回某玩家的赛季竞猜。
func GetSeasonGuessForUser(c *gin.Context) {
	userName := c.Param("name")
	view, ok, err := SeasonGuessForUser(userName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取赛季竞猜失败"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "该玩家还没有提交赛季竞猜"})
		return
	}
	c.JSON(http.StatusOK, SeasonGuessResponse{
		UserName:      view.UserName,
		HotTake:       view.HotTake,
		P2Team:        pickToResponse(view.P2Team),
		MostOvertakes: pickToResponse(view.MostOvertakes),
		MostDNFs:      pickToResponse(view.MostDNFs),
		MostGained:    pickToResponse(view.MostGained),
		MostLost:      pickToResponse(view.MostLost),
		TeamWinners:   view.TeamWinners,
		Podiums:       view.Podiums,
	})
}

// PostSeasonGuess 提交或更新一条赛季竞猜。
func PostSeasonGuess(c *gin.Context) {
	var req postSeasonGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体缺少必要字段"})
		return
	}

	update := SeasonGuessUpdate{
		HotTake:       req.HotTake,
		P2Team:        pickFromRequest(req.P2Team),
		MostOvertakes: pickFromRequest(req.MostOvertakes),
		MostDNFs:      pickFromRequest(req.MostDNFs),
		MostGained:    pickFromRequest(req.MostGained),
		MostLost:      pickFromRequest(req.MostLost),
		TeamWinners:   req.TeamWinners,
		Podiums:       req.Podiums,
	}
	if err := UpdateSeasonGuess(req.UserName, update); err != nil {
		switch {
		case errors.Is(err, ErrGuessLocked):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, lookup.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PostSeasonGuessResult 录入官方对不可推导竞猜项的判定。
func PostSeasonGuessResult(c *gin.Context) {
	var req postSeasonGuessResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体缺少必要字段"})
		return
	}

	if err := UpdateSeasonGuessResult(req.UserName, *req.HotTakeCorrect, *req.OvertakesCorrect); err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入判定失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
