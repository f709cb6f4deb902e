package controller

import (
	"errors"
	"strconv"

	"manassa_backend/internal/model"
	"manassa_backend/internal/service"
	"manassa_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
	Enrollment    *service.EnrollmentService
}

func NewCourseController(courseService *service.CourseService, enrollment *service.EnrollmentService) *CourseController {
	return &CourseController{CourseService: courseService, Enrollment: enrollment}
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// List godoc
// @Summary List published courses
// @Tags courses
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (ctl *CourseController) List(c *gin.Context) {
	page, limit := pagination(c)

	claims := util.GetUserFromContext(c)
	privileged := claims != nil && (claims.Role == model.Teacher || claims.Role == model.Admin)

	var (
		courses []model.Course
		total   int64
		err     error
	)
	if privileged {
		courses, total, err = ctl.CourseService.ListAll(page, limit)
	} else {
		courses, total, err = ctl.CourseService.ListPublished(page, limit)
	}
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	resp := gin.H{"courses": courses, "total": total, "page": page, "limit": limit}

	// Students also learn which of these they own
	if claims != nil && claims.Role == model.Student {
		purchased, err := ctl.Enrollment.PurchasedCourseIDs(claims.UserID)
		if err != nil {
			util.LogInternalError(c, err)
			return
		}
		resp["purchasedCourseIds"] = purchased
	}

	util.Success(c, resp)
}

// Get godoc
// @Summary Get one course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (ctl *CourseController) Get(c *gin.Context) {
	course, err := ctl.CourseService.Get(util.MustParseUint(c.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}

	claims := util.GetUserFromContext(c)
	privileged := claims != nil && (claims.Role == model.Teacher || claims.Role == model.Admin)
	if !course.IsPublished && !privileged {
		util.NotFound(c)
		return
	}

	util.Success(c, course)
}

// Create godoc
// @Summary Create a course
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CourseReq true "Course payload"
// @Success 201 {object} util.Response
// @Router /api/teacher/courses [post]
func (ctl *CourseController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.CourseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.CourseService.Create(claims.UserID, req)
	if err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	util.Created(c, course)
}

// Update godoc
// @Summary Update a course
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body service.CourseReq true "Course payload"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id} [put]
func (ctl *CourseController) Update(c *gin.Context) {
	var req service.CourseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.CourseService.Update(util.MustParseUint(c.Param("id")), req)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, course)
}

type publishReq struct {
	Published *bool `json:"published" binding:"required"`
}

// SetPublished godoc
// @Summary Publish or unpublish a course
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body publishReq true "Publish flag"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id}/publish [put]
func (ctl *CourseController) SetPublished(c *gin.Context) {
	var req publishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.CourseService.SetPublished(util.MustParseUint(c.Param("id")), *req.Published); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, nil)
}

// Delete godoc
// @Summary Delete a course and everything under it
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id} [delete]
func (ctl *CourseController) Delete(c *gin.Context) {
	if err := ctl.CourseService.Delete(util.MustParseUint(c.Param("id"))); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, nil)
}

type generateCodesReq struct {
	Count int `json:"count" binding:"required,min=1"`
}

// GenerateCodes godoc
// @Summary Generate single-use purchase codes for a course
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body generateCodesReq true "How many codes"
// @Success 201 {object} util.Response
// @Router /api/teacher/courses/{id}/purchase-codes [post]
func (ctl *CourseController) GenerateCodes(c *gin.Context) {
	var req generateCodesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	codes, err := ctl.Enrollment.GenerateCodes(util.MustParseUint(c.Param("id")), req.Count)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(c)
			return
		}
		util.BadRequest(c, err.Error())
		return
	}
	util.Created(c, gin.H{"codes": codes})
}

// ListCodes godoc
// @Summary List purchase codes for a course
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id}/purchase-codes [get]
func (ctl *CourseController) ListCodes(c *gin.Context) {
	page, limit := pagination(c)
	codes, total, err := ctl.Enrollment.ListCodes(util.MustParseUint(c.Param("id")), page, limit)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"codes": codes, "total": total, "page": page, "limit": limit})
}

type redeemReq struct {
	Code string `json:"code" binding:"required"`
}

// Redeem godoc
// @Summary Redeem a purchase code to unlock a course
// @Tags purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body redeemReq true "Purchase code"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/purchases/redeem [post]
func (ctl *CourseController) Redeem(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req redeemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	purchase, err := ctl.Enrollment.Redeem(claims.UserID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCodeNotFound):
			util.NotFound(c)
		case errors.Is(err, util.ErrCodeAlreadyUsed), errors.Is(err, util.ErrAlreadyPurchased):
			util.Conflict(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, purchase)
}
