package controller

import (
	"quiz_app_backend/internal/service"
	"quiz_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizAttemptController struct {
	Service *service.QuizAttemptService
}

func NewQuizAttemptController(svc *service.QuizAttemptService) *QuizAttemptController {
	return &QuizAttemptController{Service: svc}
}

// @Summary Start an attempt at a quiz
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "quiz id"
// @Success 201 {object} util.Response
// @Router /api/quiz-attempts/{quizId}/start [post]
func (c *QuizAttemptController) StartQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, ok := pathID(ctx, "quizId")
	if !ok {
		return
	}

	started, err := c.Service.StartQuiz(user.UserID, quizID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Created(ctx, started)
}

type SubmitAnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
}

// @Summary Submit one answer on the open attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "quiz id"
// @Param body body SubmitAnswerRequest true "answer"
// @Success 200 {object} util.Response
// @Router /api/quiz-attempts/{quizId}/answers [post]
func (c *QuizAttemptController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, ok := pathID(ctx, "quizId")
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	receipt, err := c.Service.SubmitAnswer(user.UserID, quizID, req.QuestionID, req.Answer)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, receipt)
}

type SubmitAllAnswersRequest struct {
	Answers map[uint]string `json:"answers" binding:"required"`
}

// @Summary Submit a batch of answers and finish the attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "quiz id"
// @Param body body SubmitAllAnswersRequest true "question id to answer map"
// @Success 200 {object} util.Response
// @Router /api/quiz-attempts/{quizId}/answers/bulk [post]
func (c *QuizAttemptController) SubmitAllAnswers(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, ok := pathID(ctx, "quizId")
	if !ok {
		return
	}

	var req SubmitAllAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	receipt, err := c.Service.SubmitAllAnswers(user.UserID, quizID, req.Answers)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, receipt)
}

// @Summary Get the student's attempt results for a quiz
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/quiz-attempts/{quizId}/result [get]
func (c *QuizAttemptController) GetResult(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, ok := pathID(ctx, "quizId")
	if !ok {
		return
	}

	results, err := c.Service.GetQuizResult(user.UserID, quizID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, results)
}

// @Summary Get the quiz leaderboard
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/quiz-attempts/{quizId}/leaderboard [get]
func (c *QuizAttemptController) GetLeaderboard(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quizId")
	if !ok {
		return
	}

	entries, err := c.Service.GetQuizLeaderboard(quizID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// @Summary Get the calling student's leaderboard position
// @Description Returns rank -1 when the student never attempted the quiz.
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/quiz-attempts/{quizId}/leaderboard/me [get]
func (c *QuizAttemptController) GetMyPosition(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, ok := pathID(ctx, "quizId")
	if !ok {
		return
	}

	rank, err := c.Service.GetStudentPositionInLeaderboard(user.UserID, quizID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"quizId": quizID, "rank": rank})
}
