package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/middleware"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/service"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/util"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// @Summary Get the active quiz
// @Description Returns the question form (without answer keys) plus the caller's session state
// @Tags quiz
// @Produce json
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "no questions loaded yet"
// @Router /quiz [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	questions := c.Service.Questions.Snapshot()
	if len(questions) == 0 {
		util.Error(ctx, http.StatusNotFound, "No questions available. Please try again later.")
		return
	}

	sess.StartQuiz()

	util.Success(ctx, gin.H{
		"questions": questions,
		"session":   sess.State(),
	})
}

type SetNameRequest struct {
	Name string `json:"name"`
}

// @Summary Set the participant name
// @Tags quiz
// @Accept json
// @Produce json
// @Param body body SetNameRequest true "participant name"
// @Success 200 {object} util.Response
// @Router /quiz/name [post]
func (c *QuizController) SetName(ctx *gin.Context) {
	var req SetNameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sess := middleware.SessionFromContext(ctx)
	sess.SetName(req.Name)

	util.Success(ctx, gin.H{"userName": req.Name})
}

type AnswerRequest struct {
	QuestionID int    `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// @Summary Record one selected answer
// @Description Stores the chosen option text for a question in the session's answer map
// @Tags quiz
// @Accept json
// @Produce json
// @Param body body AnswerRequest true "selected option"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "quiz already submitted"
// @Router /quiz/answer [post]
func (c *QuizController) RecordAnswer(ctx *gin.Context) {
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sess := middleware.SessionFromContext(ctx)
	if err := sess.RecordAnswer(req.QuestionID, req.Answer); err != nil {
		util.Error(ctx, http.StatusConflict, err.Error())
		return
	}

	util.Success(ctx, gin.H{"questionId": req.QuestionID})
}

// @Summary Submit the quiz
// @Description Scores the session's answers, appends the attempt to the leaderboard, and returns the breakdown
// @Tags quiz
// @Produce json
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "no questions loaded yet"
// @Failure 409 {object} util.Response "quiz already submitted"
// @Router /quiz/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	state := sess.State()
	if state.Submitted {
		util.Error(ctx, http.StatusConflict, util.ErrAlreadySubmitted.Error())
		return
	}

	result, err := c.Service.Submit(state.UserName, state.Answers, time.Now())
	if err != nil {
		if errors.Is(err, util.ErrNoQuestions) {
			util.Error(ctx, http.StatusNotFound, "No questions available. Please try again later.")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	sess.Submit()
	monitoring.QuizSubmissions.Inc()

	util.Success(ctx, result)
}

// @Summary Retake the quiz
// @Description Clears answers and the submitted flag; the participant name is kept
// @Tags quiz
// @Produce json
// @Success 200 {object} util.Response
// @Router /quiz/retake [post]
func (c *QuizController) Retake(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)
	sess.Retake()

	util.Success(ctx, sess.State())
}
