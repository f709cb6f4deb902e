package controller

import (
	"errors"

	"manassa_backend/internal/service"
	"manassa_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// GetCourseContent godoc
// @Summary Course content in display order
// @Description Chapters, quizzes, and homeworks merged into one list
// @Description ordered by position. Completion and result data is
// @Description attached for authenticated students.
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/content [get]
func (ctl *ContentController) GetCourseContent(c *gin.Context) {
	viewer := util.GetUserFromContext(c)
	items, err := ctl.ContentService.GetCourseContent(c.Request.Context(), util.MustParseUint(c.Param("id")), viewer)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, items)
}

// GetChapter godoc
// @Summary Get one chapter
// @Tags chapters
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/chapters/{id} [get]
func (ctl *ContentController) GetChapter(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	chapter, err := ctl.ContentService.GetChapter(claims, util.MustParseUint(c.Param("id")))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrChapterNotFound):
			util.NotFound(c)
		case errors.Is(err, util.ErrNoPurchase):
			util.Forbidden(c)
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, chapter)
}

type progressReq struct {
	Completed *bool `json:"completed" binding:"required"`
}

// MarkProgress godoc
// @Summary Mark a chapter watched or unwatched
// @Tags chapters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Param body body progressReq true "Completion flag"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/chapters/{id}/progress [post]
func (ctl *ContentController) MarkProgress(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req progressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	err := ctl.ContentService.MarkChapterProgress(claims, util.MustParseUint(c.Param("id")), *req.Completed)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrChapterNotFound):
			util.NotFound(c)
		case errors.Is(err, util.ErrNoPurchase):
			util.Forbidden(c)
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, nil)
}

// CreateChapter godoc
// @Summary Add a chapter to a course
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body service.ChapterReq true "Chapter payload"
// @Success 201 {object} util.Response
// @Router /api/teacher/courses/{id}/chapters [post]
func (ctl *ContentController) CreateChapter(c *gin.Context) {
	var req service.ChapterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	chapter, err := ctl.ContentService.CreateChapter(util.MustParseUint(c.Param("id")), req)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(c)
			return
		}
		util.BadRequest(c, err.Error())
		return
	}
	util.Created(c, chapter)
}

// UpdateChapter godoc
// @Summary Update a chapter
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Param body body service.ChapterReq true "Chapter payload"
// @Success 200 {object} util.Response
// @Router /api/teacher/chapters/{id} [put]
func (ctl *ContentController) UpdateChapter(c *gin.Context) {
	var req service.ChapterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	chapter, err := ctl.ContentService.UpdateChapter(util.MustParseUint(c.Param("id")), req)
	if err != nil {
		if errors.Is(err, util.ErrChapterNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, chapter)
}

// SetChapterPublished godoc
// @Summary Publish or unpublish a chapter
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Param body body publishReq true "Publish flag"
// @Success 200 {object} util.Response
// @Router /api/teacher/chapters/{id}/publish [put]
func (ctl *ContentController) SetChapterPublished(c *gin.Context) {
	var req publishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.ContentService.SetChapterPublished(util.MustParseUint(c.Param("id")), *req.Published); err != nil {
		if errors.Is(err, util.ErrChapterNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, nil)
}

// DeleteChapter godoc
// @Summary Delete a chapter
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/chapters/{id} [delete]
func (ctl *ContentController) DeleteChapter(c *gin.Context) {
	if err := ctl.ContentService.DeleteChapter(util.MustParseUint(c.Param("id"))); err != nil {
		if errors.Is(err, util.ErrChapterNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, nil)
}

// UploadChapterVideo godoc
// @Summary Upload a chapter video
// @Description Stores the video, probes its duration, and generates a
// @Description thumbnail. Pass uploadId to poll progress.
// @Tags teacher
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Param file formData file true "Video file"
// @Param uploadId formData string false "Client-chosen progress key"
// @Success 200 {object} util.Response
// @Router /api/teacher/chapters/{id}/video [post]
func (ctl *ContentController) UploadChapterVideo(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}
	uploadID := c.PostForm("uploadId")

	chapter, err := ctl.ContentService.UploadChapterVideo(c.Request.Context(), util.MustParseUint(c.Param("id")), uploadID, file)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrChapterNotFound):
			util.NotFound(c)
		case errors.Is(err, util.ErrInvalidVideoExt):
			util.BadRequest(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, chapter)
}

// GetUploadProgress godoc
// @Summary Poll video upload progress
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param uploadId path string true "Progress key"
// @Success 200 {object} util.Response
// @Router /api/teacher/uploads/{uploadId}/progress [get]
func (ctl *ContentController) GetUploadProgress(c *gin.Context) {
	progress, err := ctl.ContentService.GetUploadProgress(c.Request.Context(), c.Param("uploadId"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"progress": progress})
}

// UploadQuestionImage godoc
// @Summary Upload an image for use on a question
// @Tags teacher
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {object} util.Response
// @Router /api/teacher/question-images [post]
func (ctl *ContentController) UploadQuestionImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}

	url, err := ctl.ContentService.UploadQuestionImage(c.Request.Context(), file)
	if err != nil {
		if errors.Is(err, util.ErrInvalidImageExt) {
			util.BadRequest(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"url": url})
}
