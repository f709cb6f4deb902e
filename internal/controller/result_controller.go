package controller

import (
	"errors"

	"manassa_backend/internal/service"
	"manassa_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{ResultService: resultService}
}

// ListMine godoc
// @Summary Own results for one assessment, most recent first
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response
// @Router /api/assessments/{id}/results [get]
func (ctl *ResultController) ListMine(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	summaries, err := ctl.ResultService.ListMine(claims.UserID, util.MustParseUint(c.Param("id")))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, summaries)
}

// Overview godoc
// @Summary Standing on every accessible assessment
// @Description Best score and attempt count per assessment across the
// @Description caller's purchased courses, unattempted ones included.
// @Tags results
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/results/overview [get]
func (ctl *ResultController) Overview(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	entries, err := ctl.ResultService.Overview(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, entries)
}

// GetDetail godoc
// @Summary One result with its per-question breakdown
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "Result ID"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/results/{id} [get]
func (ctl *ResultController) GetDetail(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	detail, err := ctl.ResultService.GetDetail(claims, util.MustParseUint(c.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrUnauthorized) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, detail)
}

// ListAll godoc
// @Summary All student results, optionally filtered by assessment
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param assessmentId query int false "Assessment ID filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /api/teacher/results [get]
func (ctl *ResultController) ListAll(c *gin.Context) {
	page, limit := pagination(c)
	assessmentID := util.MustParseUint(c.DefaultQuery("assessmentId", "0"))

	results, total, err := ctl.ResultService.ListAll(assessmentID, page, limit)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"results": results, "total": total, "page": page, "limit": limit})
}
