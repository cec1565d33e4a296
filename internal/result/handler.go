package result

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SlpAus/formula10-league-backend/pkg/lookup"
	"github.com/gin-gonic/gin"
)

// --- API响应模型 ---

type ResultResponse struct {
	RaceNumber int             `json:"raceNumber"`
	Order      []string        `json:"order"`
	FirstDNF   []string        `json:"firstDnf"`
	AllDNF     []string        `json:"allDnf"`
	Excluded   []string        `json:"excluded"`
	FastestLap string          `json:"fastestLap"`
	Sprint     *SprintResponse `json:"sprint,omitempty"`
}

type SprintResponse struct {
	Order []string `json:"order"`
	DNF   []string `json:"dnf"`
}

// --- 请求模型 ---

type postResultRequest struct {
	Order      []string        `json:"order" binding:"required"`
	FirstDNF   []string        `json:"firstDnf"`
	AllDNF     []string        `json:"allDnf"`
	Excluded   []string        `json:"excluded"`
	FastestLap string          `json:"fastestLap" binding:"required"`
	Sprint     *SprintResponse `json:"sprint"`
}

func formatResult(result Result) ResultResponse {
	response := ResultResponse{
		RaceNumber: result.RaceNumber,
		Order:      result.Order,
		FirstDNF:   result.FirstDNF,
		AllDNF:     result.AllDNF,
		Excluded:   result.Excluded,
		FastestLap: result.FastestLap,
	}
	if result.Sprint != nil {
		response.Sprint = &SprintResponse{Order: result.Sprint.Order, DNF: result.Sprint.DNF}
	}
	return response
}

type CurrentRaceResponse struct {
	Number       int    `json:"number"`
	Name         string `json:"name"`
	Date         string `json:"date"`
	PlaceToGuess int    `json:"placeToGuess"`
	HasSprint    bool   `json:"hasSprint"`
}

// --- 控制器函数 ---

// GetCurrentRace 返回第一个还没有正式结果的分站，即当前可竞猜的分站。
func GetCurrentRace(c *gin.Context) {
	race, ok, err := FirstRaceWithoutResult()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取当前分站失败"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "赛季已经全部结束"})
		return
	}
	c.JSON(http.StatusOK, CurrentRaceResponse{
		Number:       race.Number,
		Name:         race.Name,
		Date:         race.Date.Format("2006-01-02T15:04:05Z07:00"),
		PlaceToGuess: race.PlaceToGuess,
		HasSprint:    race.HasSprint,
	})
}

// GetResults 返回全部已录入的结果，最近的分站在前。
func GetResults(c *gin.Context) {
	results, err := AllResults()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取比赛结果失败"})
		return
	}
	responses := make([]ResultResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, formatResult(result))
	}
	c.JSON(http.StatusOK, responses)
}

// GetResultByRace 返回指定分站的结果。
func GetResultByRace(c *gin.Context) {
	raceNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "分站序号必须是整数"})
		return
	}
	result, ok, err := ResultForRace(raceNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取比赛结果失败"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "该分站还没有正式结果"})
		return
	}
	c.JSON(http.StatusOK, formatResult(result))
}

// PostResult 录入（或覆盖）一场正式结果。
func PostResult(c *gin.Context) {
	raceNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "分站序号必须是整数"})
		return
	}

	var req postResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体缺少必要字段"})
		return
	}

	entry := ResultEntry{
		RaceNumber: raceNumber,
		Order:      req.Order,
		FirstDNF:   req.FirstDNF,
		AllDNF:     req.AllDNF,
		Excluded:   req.Excluded,
		FastestLap: req.FastestLap,
	}
	if req.Sprint != nil {
		entry.Sprint = &SprintResult{Order: req.Sprint.Order, DNF: req.Sprint.DNF}
	}

	if err := UpdateRaceResult(entry); err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
