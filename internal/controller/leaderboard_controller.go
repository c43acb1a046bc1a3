package controller

import (
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/service"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	Service *service.QuizService
}

func NewLeaderboardController(svc *service.QuizService) *LeaderboardController {
	return &LeaderboardController{Service: svc}
}

// @Summary Get the ranked leaderboard
// @Description Returns all attempts ordered by rank; empty if nobody has taken the quiz yet
// @Tags leaderboard
// @Produce json
// @Success 200 {object} util.Response
// @Router /leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	rows, err := c.Service.Leaderboard()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"rows":  rows,
		"total": len(rows),
	})
}
