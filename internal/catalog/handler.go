package catalog

import (
	"errors"
	"net/http"

	"github.com/SlpAus/formula10-league-backend/pkg/lookup"
	"github.com/gin-gonic/gin"
)

// --- API响应模型 ---

type UserResponse struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

type RaceResponse struct {
	Number       int    `json:"number"`
	Name         string `json:"name"`
	Date         string `json:"date"`
	PlaceToGuess int    `json:"placeToGuess"`
	HasSprint    bool   `json:"hasSprint"`
}

// --- 请求模型 ---

type addUserRequest struct {
	Name string `json:"name" binding:"required"`
}

type setUserEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// --- 控制器函数 ---

// GetDrivers 返回车手名单。?includeInactive=true 时包含停用车手。
func GetDrivers(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"
	c.JSON(http.StatusOK, AllDrivers(includeInactive))
}

// GetTeams 返回车队名单。
func GetTeams(c *gin.Context) {
	c.JSON(http.StatusOK, AllTeams())
}

// GetDriverByAbbr 按三字母缩写返回单个车手。
func GetDriverByAbbr(c *gin.Context) {
	driver, err := DriverByAbbr(c.Param("abbr"))
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "找不到该缩写对应的车手"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询车手失败"})
		return
	}
	c.JSON(http.StatusOK, driver)
}

// GetTeamDrivers 返回某支车队的车手。?includeInactive=true 时包含停用车手。
func GetTeamDrivers(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"
	drivers, err := DriversForTeam(c.Param("name"), includeInactive)
	if err != nil {
		if errors.Is(err, lookup.ErrCardinality) {
			c.JSON(http.StatusNotFound, gin.H{"error": "找不到该车队的车手名单"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询车队车手失败"})
		return
	}
	c.JSON(http.StatusOK, drivers)
}

// GetRaces 返回赛历，按赛季序号升序。?order=desc 时最近的分站在前。
func GetRaces(c *gin.Context) {
	races := AllRaces()
	if c.Query("order") == "desc" {
		races = AllRacesDescending()
	}
	responses := make([]RaceResponse, 0, len(races))
	for _, race := range races {
		responses = append(responses, RaceResponse{
			Number:       race.Number,
			Name:         race.Name,
			Date:         race.Date.Format("2006-01-02T15:04:05Z07:00"),
			PlaceToGuess: race.PlaceToGuess,
			HasSprint:    race.HasSprint,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// GetRaceByName 按分站名称返回单个分站。
func GetRaceByName(c *gin.Context) {
	race, err := RaceByName(c.Param("name"))
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "找不到该分站"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询分站失败"})
		return
	}
	c.JSON(http.StatusOK, RaceResponse{
		Number:       race.Number,
		Name:         race.Name,
		Date:         race.Date.Format("2006-01-02T15:04:05Z07:00"),
		PlaceToGuess: race.PlaceToGuess,
		HasSprint:    race.HasSprint,
	})
}

// GetUsers 返回全部启用的玩家。
func GetUsers(c *gin.Context) {
	users, err := AllEnabledUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取玩家列表失败"})
		return
	}
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, UserResponse{Name: user.Name, Enabled: user.Enabled})
	}
	c.JSON(http.StatusOK, responses)
}

// PostUser 添加一名新玩家。
func PostUser(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体缺少玩家名称"})
		return
	}

	user, err := AddUser(req.Name)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "玩家名称已被占用"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, UserResponse{Name: user.Name, Enabled: user.Enabled})
}

// PatchUserEnabled 启用或禁用一名玩家。
func PatchUserEnabled(c *gin.Context) {
	name := c.Param("name")
	var req setUserEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体缺少enabled字段"})
		return
	}

	user, err := SetUserEnabled(name, *req.Enabled)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "找不到该玩家"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新玩家状态失败"})
		return
	}
	c.JSON(http.StatusOK, UserResponse{Name: user.Name, Enabled: user.Enabled})
}
