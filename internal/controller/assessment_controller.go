package controller

import (
	"errors"

	"manassa_backend/internal/service"
	"manassa_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
	SubmissionService *service.SubmissionService
}

func NewAssessmentController(assessmentService *service.AssessmentService, submissionService *service.SubmissionService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService, SubmissionService: submissionService}
}

func respondQuestionErrors(c *gin.Context, err error) bool {
	var verr *util.QuestionValidationError
	if errors.As(err, &verr) {
		c.JSON(400, util.Response{Code: 400, Message: "invalid questions", Data: verr.Items})
		return true
	}
	return false
}

// Create godoc
// @Summary Create a quiz or homework with its questions
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body service.AssessmentReq true "Assessment payload"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/teacher/courses/{id}/assessments [post]
func (ctl *AssessmentController) Create(c *gin.Context) {
	var req service.AssessmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	detail, err := ctl.AssessmentService.Create(util.MustParseUint(c.Param("id")), req)
	if err != nil {
		if respondQuestionErrors(c, err) {
			return
		}
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(c)
			return
		}
		util.BadRequest(c, err.Error())
		return
	}
	util.Created(c, detail)
}

// Update godoc
// @Summary Update an assessment, replacing its question set
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body service.AssessmentReq true "Assessment payload"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id} [put]
func (ctl *AssessmentController) Update(c *gin.Context) {
	var req service.AssessmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	detail, err := ctl.AssessmentService.Update(util.MustParseUint(c.Param("id")), req)
	if err != nil {
		if respondQuestionErrors(c, err) {
			return
		}
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(c)
			return
		}
		util.BadRequest(c, err.Error())
		return
	}
	util.Success(c, detail)
}

// SetPublished godoc
// @Summary Publish or unpublish an assessment
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body publishReq true "Publish flag"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id}/publish [put]
func (ctl *AssessmentController) SetPublished(c *gin.Context) {
	var req publishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.AssessmentService.SetPublished(util.MustParseUint(c.Param("id")), *req.Published); err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(c)
			return
		}
		util.BadRequest(c, err.Error())
		return
	}
	util.Success(c, nil)
}

// Delete godoc
// @Summary Delete an assessment and its results
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id} [delete]
func (ctl *AssessmentController) Delete(c *gin.Context) {
	if err := ctl.AssessmentService.Delete(util.MustParseUint(c.Param("id"))); err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, nil)
}

// GetForAuthor godoc
// @Summary Authoring view of an assessment, correct answers included
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id} [get]
func (ctl *AssessmentController) GetForAuthor(c *gin.Context) {
	detail, err := ctl.AssessmentService.GetForAuthor(util.MustParseUint(c.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, detail)
}

// ListByCourse godoc
// @Summary List a course's assessments, drafts included
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id}/assessments [get]
func (ctl *AssessmentController) ListByCourse(c *gin.Context) {
	assessments, err := ctl.AssessmentService.ListByCourse(util.MustParseUint(c.Param("id")))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, assessments)
}

// GetForStudent godoc
// @Summary Attempt view of a published assessment
// @Description Questions without correct answers, plus the caller's
// @Description attempt standing and the time limit.
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id} [get]
func (ctl *AssessmentController) GetForStudent(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	view, err := ctl.SubmissionService.GetForStudent(claims, util.MustParseUint(c.Param("id")))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssessmentNotFound):
			util.NotFound(c)
		case errors.Is(err, util.ErrNoPurchase):
			util.Forbidden(c)
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, view)
}

// Submit godoc
// @Summary Submit an attempt for grading
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body service.SubmitReq true "Answers keyed by question ID"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/assessments/{id}/submit [post]
func (ctl *AssessmentController) Submit(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.SubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctl.SubmissionService.Submit(claims, util.MustParseUint(c.Param("id")), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptLimitReached):
			util.BadRequest(c, err.Error())
		case errors.Is(err, util.ErrAssessmentNotFound):
			util.NotFound(c)
		case errors.Is(err, util.ErrNoPurchase):
			util.Forbidden(c)
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Created(c, result)
}
