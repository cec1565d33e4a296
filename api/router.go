package api

import (
	"github.com/SlpAus/formula10-league-backend/internal/catalog"
	"github.com/SlpAus/formula10-league-backend/internal/guess"
	"github.com/SlpAus/formula10-league-backend/internal/points"
	"github.com/SlpAus/formula10-league-backend/internal/result"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 参照数据与玩家管理
		catalogRoutes := api.Group("/catalog")
		{
			catalogRoutes.GET("/drivers", catalog.GetDrivers)
			catalogRoutes.GET("/drivers/:abbr", catalog.GetDriverByAbbr)
			catalogRoutes.GET("/teams", catalog.GetTeams)
			catalogRoutes.GET("/teams/:name/drivers", catalog.GetTeamDrivers)
			catalogRoutes.GET("/races", catalog.GetRaces)
			catalogRoutes.GET("/races/:name", catalog.GetRaceByName)
			catalogRoutes.GET("/users", catalog.GetUsers)
			catalogRoutes.POST("/users", catalog.PostUser)
			catalogRoutes.PATCH("/users/:name/enabled", catalog.PatchUserEnabled)
		}

		// 竞猜提交与查询
		guessRoutes := api.Group("/guesses")
		{
			guessRoutes.GET("/race/user/:name", guess.GetRaceGuessesForUser)
			guessRoutes.GET("/race/user/:name/race/:number", guess.GetRaceGuessForUserAndRace)
			guessRoutes.GET("/race/race/:number", guess.GetRaceGuessesForRace)
			guessRoutes.POST("/race", guess.PostRaceGuess)
			guessRoutes.GET("/season/:name", guess.GetSeasonGuessForUser)
			guessRoutes.POST("/season", guess.PostSeasonGuess)
			guessRoutes.POST("/season/result", guess.PostSeasonGuessResult)
		}

		// 正式结果录入与查询
		resultRoutes := api.Group("/results")
		{
			resultRoutes.GET("", result.GetResults)
			resultRoutes.GET("/:number", result.GetResultByRace)
			resultRoutes.POST("/:number", result.PostResult)
		}
		api.GET("/current-race", result.GetCurrentRace)

		// 积分、排名与统计
		pointsRoutes := api.Group("/points")
		{
			pointsRoutes.GET("/users", points.GetUserPoints)
			pointsRoutes.GET("/users/:name", points.GetUserStanding)
			pointsRoutes.GET("/users/:name/races/:number", points.GetUserPointsForRace)
			pointsRoutes.GET("/drivers", points.GetDriverPoints)
			pointsRoutes.GET("/teams", points.GetTeamPoints)
		}
		api.GET("/standings/:kind", points.GetStandings)
		api.GET("/leaderboard/:kind", points.GetLeaderboard)
		api.GET("/stats", points.GetStats)
		seasonRoutes := api.Group("/season-evaluations")
		{
			seasonRoutes.GET("", points.GetSeasonEvaluations)
			seasonRoutes.GET("/:name", points.GetSeasonEvaluationForUser)
		}
	}
}
