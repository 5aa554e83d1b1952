package controller

import (
	"strconv"

	"quiz_app_backend/internal/service"
	"quiz_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id < 1 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// @Summary Create a multiple-choice question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.MCQRequest true "question data"
// @Success 201 {object} util.Response
// @Router /api/questions/mcq [post]
func (c *QuestionController) AddMCQ(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.MCQRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.AddMCQQuestion(user.UserID, req)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary Create a fill-in-the-blank question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.FillUpsRequest true "question data"
// @Success 201 {object} util.Response
// @Router /api/questions/fillups [post]
func (c *QuestionController) AddFillUps(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.FillUpsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.AddFillUpsQuestion(user.UserID, req)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary Update a multiple-choice question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Param body body service.MCQUpdateRequest true "fields to change"
// @Success 200 {object} util.Response
// @Router /api/questions/mcq/{id} [put]
func (c *QuestionController) UpdateMCQ(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.MCQUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.UpdateMCQQuestion(user.UserID, id, req)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Update a fill-in-the-blank question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Param body body service.FillUpsUpdateRequest true "fields to change"
// @Success 200 {object} util.Response
// @Router /api/questions/fillups/{id} [put]
func (c *QuestionController) UpdateFillUps(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.FillUpsUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.UpdateFillUpsQuestion(user.UserID, id, req)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary List all active questions
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param type query string false "MCQ or FillUps"
// @Success 200 {object} util.Response
// @Router /api/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	switch ctx.Query("type") {
	case "MCQ":
		qs, err := c.Service.GetAllMCQQuestions()
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, qs)
	case "FillUps":
		qs, err := c.Service.GetAllFillUpsQuestions()
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, qs)
	default:
		qs, err := c.Service.GetAllQuestions()
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, qs)
	}
}

// @Summary Get one question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	q, err := c.Service.GetQuestion(id)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary List soft-deleted questions
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/questions/deleted [get]
func (c *QuestionController) ListDeleted(ctx *gin.Context) {
	qs, err := c.Service.GetSoftDeletedQuestions()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, qs)
}

// @Summary Soft-delete a question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/questions/{id} [delete]
func (c *QuestionController) SoftDelete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.SoftDeleteQuestion(user.UserID, id); err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary Restore a soft-deleted question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/questions/{id}/restore [post]
func (c *QuestionController) Restore(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.RestoreQuestion(user.UserID, id); err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"restored": id})
}

// @Summary Permanently delete a question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/questions/{id}/permanent [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.DeleteQuestion(user.UserID, id); err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}
