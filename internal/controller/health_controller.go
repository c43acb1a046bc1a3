package controller

import (
	"os"

	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/repository"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Questions *repository.QuestionRepository
	Results   *repository.ResultRepository
}

func NewHealthController(questions *repository.QuestionRepository, results *repository.ResultRepository) *HealthController {
	return &HealthController{Questions: questions, Results: results}
}

// @Summary Health check
// @Description Service liveness plus the state of the two workbooks
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	resultsPresent := true
	if _, err := os.Stat(c.Results.Path()); os.IsNotExist(err) {
		resultsPresent = false
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"questionBank": gin.H{
				"questions": c.Questions.Count(),
			},
			"resultsFile": gin.H{
				"present": resultsPresent,
			},
		},
	})
}
